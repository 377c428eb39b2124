// Command seed fills a running notedeck server with sample notes and todos.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"
)

var sampleNotes = []map[string]interface{}{
	{
		"title":    "Meeting notes",
		"content":  "## Weekly sync\n\n- Review the roadmap\n- Assign the release tasks",
		"tags":     []string{"work"},
		"isPinned": true,
	},
	{
		"title":   "Book recommendations",
		"content": "The Go Programming Language, Designing Data-Intensive Applications",
		"tags":    []string{"reading"},
	},
	{
		"title": "Scratchpad",
	},
}

func sampleTodos() []map[string]interface{} {
	due := time.Now().AddDate(0, 0, 7).Format(time.RFC3339)
	return []map[string]interface{}{
		{"title": "File quarterly report", "type": "task", "priority": "high", "dueDate": due, "tags": []string{"work"}},
		{"title": "Morning stretch", "type": "habit", "habitFrequency": "daily", "priority": "low"},
		{"title": "Milk", "type": "shopping", "quantity": 2},
		{"title": "Read the chi docs", "type": "bookmark", "url": "https://github.com/go-chi/chi"},
		{"title": "Run a 10k", "type": "goal", "priority": "medium"},
	}
}

func post(client *http.Client, url string, body map[string]interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "base URL of the notedeck server")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	for _, note := range sampleNotes {
		if err := post(client, *baseURL+"/api/notes", note); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create note %q: %v\n", note["title"], err)
			os.Exit(1)
		}
	}
	for _, todo := range sampleTodos() {
		if err := post(client, *baseURL+"/api/todos", todo); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create todo %q: %v\n", todo["title"], err)
			os.Exit(1)
		}
	}

	fmt.Printf("Seeded %d notes and %d todos\n", len(sampleNotes), len(sampleTodos()))
}
