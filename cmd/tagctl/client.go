package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// doRequest sends one authenticated request and pretty-prints the JSON
// response. Non-2xx responses become errors carrying the server's body.
func doRequest(method, path string, payload any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, strings.TrimRight(serverURL, "/")+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+authToken)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cannot reach server at %s: %w", serverURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "", "  ") == nil {
		raw = pretty.Bytes()
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned status %d:\n%s", resp.StatusCode, raw)
	}
	fmt.Printf("[%d]\n%s\n", resp.StatusCode, raw)
	return nil
}

func getJSON(path string) error {
	return doRequest(http.MethodGet, path, nil)
}

func postJSON(path string, payload any) error {
	return doRequest(http.MethodPost, path, payload)
}

func deleteJSON(path string) error {
	return doRequest(http.MethodDelete, path, nil)
}

func putJSON(path string, payload any) error {
	return doRequest(http.MethodPut, path, payload)
}
