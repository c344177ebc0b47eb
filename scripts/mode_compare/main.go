// Command mode_compare diffs two running instances of the console API, one
// in fixture mode and one backed by Postgres, to check that the relational
// backend serves the same payloads as the static dataset.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Method   string `json:"method"`
	Path     string `json:"path"`
	Critical bool   `json:"critical"`
}

type targetsFile struct {
	Targets []target `json:"targets"`
}

type comparison struct {
	Target          target
	FixtureStatus   int
	DatabaseStatus  int
	StatusMatch     bool
	BodyMatch       bool
	Error           error
	FixtureLatency  time.Duration
	DatabaseLatency time.Duration
}

func main() {
	var (
		fixtureBase  string
		databaseBase string
		targetsPath  string
		token        string
		timeout      time.Duration
	)

	flag.StringVar(&fixtureBase, "fixture-base", "http://localhost:8080", "base URL of the fixture-mode instance")
	flag.StringVar(&databaseBase, "database-base", "http://localhost:8081", "base URL of the database-backed instance")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "mode_compare", "targets.json"), "path to the JSON targets file")
	flag.StringVar(&token, "token", "", "bearer token used on both instances")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	var (
		results  []comparison
		breaking int
		minor    int
	)

	for _, t := range targets {
		res := compare(client, fixtureBase, databaseBase, token, t)
		if res.Error != nil || !res.StatusMatch || !res.BodyMatch {
			if t.Critical {
				breaking++
			} else if res.Error == nil {
				minor++
			}
		}
		results = append(results, res)
	}

	printReport(results)

	fmt.Printf("Breaking diffs: %d, Minor diffs: %d\n", breaking, minor)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

func compare(client *http.Client, fixtureBase, databaseBase, token string, tgt target) comparison {
	res := comparison{Target: tgt}

	fixtureResp, fixtureDur, err := request(client, fixtureBase, token, tgt)
	if err != nil {
		res.Error = fmt.Errorf("fixture request failed: %w", err)
		return res
	}
	defer fixtureResp.Body.Close()

	databaseResp, databaseDur, err := request(client, databaseBase, token, tgt)
	if err != nil {
		res.Error = fmt.Errorf("database request failed: %w", err)
		return res
	}
	defer databaseResp.Body.Close()

	res.FixtureLatency = fixtureDur
	res.DatabaseLatency = databaseDur
	res.FixtureStatus = fixtureResp.StatusCode
	res.DatabaseStatus = databaseResp.StatusCode
	res.StatusMatch = res.FixtureStatus == res.DatabaseStatus

	fixtureBody, err := io.ReadAll(fixtureResp.Body)
	if err != nil {
		res.Error = fmt.Errorf("read fixture body: %w", err)
		return res
	}
	databaseBody, err := io.ReadAll(databaseResp.Body)
	if err != nil {
		res.Error = fmt.Errorf("read database body: %w", err)
		return res
	}
	res.BodyMatch = bodiesEqual(fixtureBody, databaseBody)
	return res
}

func request(client *http.Client, base, token string, tgt target) (*http.Response, time.Duration, error) {
	if client == nil {
		return nil, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return nil, 0, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	return resp, time.Since(start), nil
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

// normalize collapses whole-valued floats to integers so the two JSON
// decoders agree on numeric typing.
func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}

func printReport(results []comparison) {
	fmt.Println("Mode Compare Report")
	fmt.Println("===================")
	for _, res := range results {
		status := "OK"
		if res.Error != nil {
			status = "ERROR"
		} else if !res.StatusMatch || !res.BodyMatch {
			status = "DIFF"
		}
		fmt.Printf("[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		if res.Error != nil {
			fmt.Printf("  Error: %v\n", res.Error)
			continue
		}
		fmt.Printf("  Fixture: %d (%s) | Database: %d (%s)\n",
			res.FixtureStatus, res.FixtureLatency, res.DatabaseStatus, res.DatabaseLatency)
		fmt.Printf("  Status match: %t | Body match: %t | Critical: %t\n",
			res.StatusMatch, res.BodyMatch, res.Target.Critical)
	}
}
