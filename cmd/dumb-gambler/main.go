// dumb-gambler plays the public API at random: it registers, then claims
// grants and places wagers until stopped, logging every reply.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"
)

type result struct {
	OK      *bool  `json:"ok,omitempty"`
	Granted *bool  `json:"granted,omitempty"`
	Created *bool  `json:"created,omitempty"`
	Balance int64  `json:"balance"`
	Net     int64  `json:"net,omitempty"`
	Error   string `json:"error,omitempty"`
}

func main() {
	baseURL := getenv("BASE_URL", "http://localhost:8080")
	identity, _ := strconv.ParseInt(getenv("IDENTITY", "1001"), 10, 64)
	name := getenv("NAME", "gambler")

	client := &http.Client{Timeout: 5 * time.Second}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	res, err := post(client, baseURL+"/api/register", map[string]any{"identity": identity, "name": name})
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("registered: %+v", res)

	for {
		res, err := play(client, rnd, baseURL, identity, name)
		if err != nil {
			log.Printf("play: %v", err)
		} else {
			log.Printf("balance=%d result=%+v", res.Balance, res)
		}
		time.Sleep(time.Second)
	}
}

func play(client *http.Client, rnd *rand.Rand, baseURL string, identity int64, name string) (result, error) {
	body := map[string]any{"identity": identity, "name": name}
	switch rnd.Intn(5) {
	case 0:
		return post(client, baseURL+"/api/bonus", body)
	case 1:
		return post(client, baseURL+"/api/loan", body)
	case 2:
		body["kind"] = "coin"
	case 3:
		body["kind"] = "slot"
	default:
		body["kind"] = "dice"
	}
	return post(client, baseURL+"/api/wager", body)
}

func post(client *http.Client, url string, body map[string]any) (result, error) {
	payload, _ := json.Marshal(body)
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		return result{}, err
	}
	defer resp.Body.Close()

	var res result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return result{}, err
	}
	if res.Error != "" {
		return res, fmt.Errorf("%s: %s", url, res.Error)
	}
	return res, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
