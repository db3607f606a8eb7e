// Command admin is the operator CLI for a running backend. It drives the
// HTTP API, so it needs no access to anything but the server address and a
// valid bearer token.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
)

func main() {
	baseURL := os.Getenv("SERVER_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	token := os.Getenv("ADMIN_TOKEN")

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <stats|cleanup> [args]")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "stats":
		body, err := request(http.MethodGet, baseURL+"/stats", token, nil)
		if err != nil {
			log.Fatalf("Error fetching stats: %v", err)
		}
		fmt.Println(body)
	case "cleanup":
		minutes := 0
		if len(os.Args) > 2 {
			var err error
			minutes, err = strconv.Atoi(os.Args[2])
			if err != nil {
				fmt.Println("Invalid timeout. Please provide minutes as an integer.")
				os.Exit(1)
			}
		}
		payload, _ := json.Marshal(map[string]int{"timeout_minutes": minutes})
		body, err := request(http.MethodPost, baseURL+"/cleanup", token, payload)
		if err != nil {
			log.Fatalf("Error running cleanup: %v", err)
		}
		fmt.Println(body)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func request(method, url, token string, payload []byte) (string, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return "", err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("server returned %s: %s", resp.Status, data)
	}
	return string(data), nil
}
