package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
)

const itemCount = 15

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the server")
	testType := flag.String("test", "all", "Test type: all, health, questionnaire, submit, custom")
	answers := flag.IntSlice("responses", nil, "15 comma-separated answers for the custom test")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("ISA-Q Server - Smoke Tests")
	fmt.Printf("%sBase URL: %s%s\n\n", colorCyan, *baseURL, colorReset)

	switch *testType {
	case "all":
		client.runAllTests()
	case "health":
		client.testHealthCheck()
	case "questionnaire":
		client.testQuestionnaire()
	case "submit":
		client.testSubmission()
	case "custom":
		if len(*answers) == 0 {
			printError("Responses are required for custom test. Use --responses")
			os.Exit(1)
		}
		client.testCustomSubmission(*answers)
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, questionnaire, submit, custom")
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Questionnaire", tc.testQuestionnaire},
		{"Submission", tc.testSubmission},
		{"Missing Demographics", tc.testMissingDemographics},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	fmt.Printf("%sPassed: %d%s\n", colorGreen, passed, colorReset)
	fmt.Printf("%sFailed: %d%s\n", colorRed, failed, colorReset)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	url := fmt.Sprintf("%s/health", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testQuestionnaire() bool {
	printTestHeader("Testing Questionnaire Endpoint")

	url := fmt.Sprintf("%s/api/questionnaire", tc.baseURL)
	fmt.Printf("GET %s\n", url)

	resp, err := tc.client.Get(url)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var questionnaire struct {
		Items   []map[string]interface{} `json:"items"`
		Options map[string][]string      `json:"options"`
	}
	if err := json.Unmarshal(body, &questionnaire); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	if len(questionnaire.Items) != itemCount {
		printError(fmt.Sprintf("Expected %d items, got %d", itemCount, len(questionnaire.Items)))
		return false
	}
	for _, field := range []string{"gender", "age_bracket", "education"} {
		if len(questionnaire.Options[field]) == 0 {
			printError(fmt.Sprintf("Missing options for: %s", field))
			return false
		}
	}

	printSuccess("Questionnaire is valid")
	return true
}

func (tc *TestClient) testSubmission() bool {
	answers := make([]int, itemCount)
	for i := range answers {
		answers[i] = 3
	}
	return tc.testCustomSubmission(answers)
}

func (tc *TestClient) testCustomSubmission(answers []int) bool {
	printTestHeader("Testing Assessment Submission")

	request := map[string]interface{}{
		"gender":      "Other",
		"age_bracket": "31-40",
		"education":   "Postgraduate",
		"responses":   answers,
	}

	status, body, ok := tc.postAssessment(request)
	if !ok {
		return false
	}

	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	result, ok := response["result"].(map[string]interface{})
	if !ok {
		printError("Invalid result format")
		return false
	}

	fmt.Printf("\n%sTotal:%s %v/90\n", colorGreen, colorReset, result["total"])
	fmt.Printf("%sTier:%s %v\n", colorGreen, colorReset, response["message"])

	if persistence, ok := response["persistence"].(map[string]interface{}); ok {
		if saved, _ := persistence["success"].(bool); saved {
			printSuccess("Row saved to spreadsheet")
		} else {
			fmt.Printf("%sRow not saved: %v%s\n", colorYellow, persistence["error_detail"], colorReset)
		}
	}

	printSuccess("Submission scored successfully")
	return true
}

func (tc *TestClient) testMissingDemographics() bool {
	printTestHeader("Testing Missing Demographics")

	answers := make([]int, itemCount)
	for i := range answers {
		answers[i] = 3
	}
	status, body, ok := tc.postAssessment(map[string]interface{}{
		"gender":    "F",
		"responses": answers,
	})
	if !ok {
		return false
	}

	if status != http.StatusUnprocessableEntity {
		printError(fmt.Sprintf("Expected status 422, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	printSuccess("Incomplete submission rejected")
	printJSON(body)
	return true
}

func (tc *TestClient) postAssessment(request map[string]interface{}) (int, []byte, bool) {
	url := fmt.Sprintf("%s/api/assessments", tc.baseURL)
	fmt.Printf("POST %s\n", url)

	jsonData, _ := json.MarshalIndent(request, "", "  ")
	fmt.Printf("%sRequest:%s\n", colorYellow, colorReset)
	fmt.Println(string(jsonData))
	fmt.Println()

	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return 0, nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, true
}

func printHeader(text string) {
	fmt.Printf("\n%s%s%s\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
	fmt.Printf("%s= %s =%s\n", colorBlue, text, colorReset)
	fmt.Printf("%s%s%s\n\n", colorBlue, strings.Repeat("=", len(text)+4), colorReset)
}

func printTestHeader(text string) {
	fmt.Printf("%s[TEST] %s%s\n", colorCyan, text, colorReset)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	fmt.Printf("%s✓ %s%s\n", colorGreen, text, colorReset)
}

func printError(text string) {
	fmt.Printf("%s✗ %s%s\n", colorRed, text, colorReset)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		fmt.Printf("\n%sResponse:%s\n%s\n", colorYellow, colorReset, prettyJSON.String())
	}
}
