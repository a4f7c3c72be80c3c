package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"go.uber.org/atomic"
)

const (
	baseURL      = "http://127.0.0.1:8090"
	tokenHeader  = "X-Guest-Token"
	numWorkers   = 50
	testDuration = 10 * time.Second
	sampleIDs    = 2000
)

var (
	nameParts = []string{"KUMAR", "SHARMA", "SINGH", "GUPTA", "RAJ", "ASHA", "DEV"}
	pincodes  = []string{"110019", "110020", "110075", "2013", "1100"}
)

var httpClient = &http.Client{
	Timeout: 10 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

type worker struct {
	rng   *rand.Rand
	token string
	ids   []string
}

func main() {
	fmt.Println("=== Call Tracker Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Sampled voter ids: up to %d\n\n", numWorkers, testDuration, sampleIDs)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	workers := make([]*worker, numWorkers)
	for i := range workers {
		token, err := login(fmt.Sprintf("Volunteer %02d", i+1))
		if err != nil {
			fmt.Printf("FAILED: login: %s\n", err)
			return
		}
		workers[i] = &worker{rng: rand.New(rand.NewSource(rand.Int63() + int64(i))), token: token}
	}

	ids, err := sampleVoterIDs(workers[0].token)
	if err != nil || len(ids) == 0 {
		fmt.Printf("FAILED: no voter ids to toggle (%v)\n", err)
		return
	}
	for _, w := range workers {
		w.ids = ids
	}
	fmt.Printf("Sampled %d voter ids\n", len(ids))

	fmt.Println("\n--- Phase 1: Calling (80% toggle, 20% search) ---")
	runPhase(workers, testDuration, func(w *worker) result {
		if w.rng.Float64() < 0.80 {
			return w.toggle()
		}
		return w.search()
	})

	fmt.Println("\n--- Phase 2: Browsing (search, session results, leaderboard, slip) ---")
	runPhase(workers, testDuration, func(w *worker) result {
		r := w.rng.Float64()
		switch {
		case r < 0.35:
			return w.search()
		case r < 0.55:
			return w.sessionSearch()
		case r < 0.75:
			return w.get("/leaderboard")
		case r < 0.90:
			return w.get("/slip?q=" + nameParts[w.rng.Intn(len(nameParts))])
		default:
			return w.get("/voters/count")
		}
	})
}

func login(name string) (string, error) {
	data, _ := json.Marshal(map[string]string{"displayName": name})
	resp, err := httpClient.Post(baseURL+"/login", "application/json", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.Token, nil
}

// sampleVoterIDs pages through a few searches to collect real ids.
func sampleVoterIDs(token string) ([]string, error) {
	seen := map[string]struct{}{}
	var ids []string
	for _, name := range nameParts {
		for page := 1; page <= 10 && len(ids) < sampleIDs; page++ {
			data, _ := json.Marshal(map[string]any{"criteria": map[string]string{"name": name}, "page": page})
			req, err := http.NewRequest(http.MethodPost, baseURL+"/search", bytes.NewReader(data))
			if err != nil {
				return nil, err
			}
			req.Header.Set(tokenHeader, token)
			req.Header.Set("Content-Type", "application/json")
			resp, err := httpClient.Do(req)
			if err != nil {
				return nil, err
			}
			var view struct {
				TotalPages int `json:"totalPages"`
				Voters     []struct {
					ID string `json:"id"`
				} `json:"voters"`
			}
			err = json.NewDecoder(resp.Body).Decode(&view)
			resp.Body.Close()
			if err != nil {
				return nil, err
			}
			for _, v := range view.Voters {
				if _, ok := seen[v.ID]; !ok {
					seen[v.ID] = struct{}{}
					ids = append(ids, v.ID)
				}
			}
			if page >= view.TotalPages {
				break
			}
		}
	}
	return ids, nil
}

func runPhase(workers []*worker, duration time.Duration, workFn func(w *worker) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for _, w := range workers {
		wg.Add(1)
		go func(w *worker) {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(w)
					totalOps.Inc()
					results <- r
				}
			}
		}(w)
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-26s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 92))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-26s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 92))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func (w *worker) criteria() map[string]string {
	c := map[string]string{}
	if w.rng.Float64() < 0.7 {
		c["name"] = nameParts[w.rng.Intn(len(nameParts))]
	}
	if w.rng.Float64() < 0.4 {
		c["pincode"] = pincodes[w.rng.Intn(len(pincodes))]
	}
	return c
}

func (w *worker) toggle() result {
	id := w.ids[w.rng.Intn(len(w.ids))]
	// 409 means this worker's previous toggle is still in flight.
	return w.send(http.MethodPost, "/session/toggle", map[string]string{"voterId": id}, http.StatusOK, http.StatusConflict)
}

func (w *worker) search() result {
	body := map[string]any{"criteria": w.criteria(), "page": w.rng.Intn(5) + 1}
	return w.send(http.MethodPost, "/search", body, http.StatusOK)
}

func (w *worker) sessionSearch() result {
	if w.rng.Float64() < 0.5 {
		return w.send(http.MethodPut, "/session/criteria", w.criteria(), http.StatusAccepted)
	}
	navs := []string{"first", "prev", "next", "last"}
	return w.get("/session/results?nav=" + navs[w.rng.Intn(len(navs))])
}

func (w *worker) get(path string) result {
	return w.send(http.MethodGet, path, nil, http.StatusOK)
}

func (w *worker) send(method, path string, body any, ok ...int) result {
	endpoint := method + " " + strings.SplitN(path, "?", 2)[0]

	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	req.Header.Set(tokenHeader, w.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	failed := true
	for _, code := range ok {
		if resp.StatusCode == code {
			failed = false
		}
	}
	return result{endpoint, resp.StatusCode, lat, failed}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
