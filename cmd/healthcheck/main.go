package main

import (
	"net/http"
	"os"
	"time"
)

const defaultURL = "http://127.0.0.1:8080/api/version"

func main() {
	url := defaultURL
	if len(os.Args) > 1 && os.Args[1] != "" {
		url = os.Args[1]
	}
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
