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
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:8080"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numUsers     = 200
	numVariants  = 300
)

// Scan bodies are built from these fragments. numVariants bounds the distinct
// fingerprints, so repeated submissions exercise the result cache.
var (
	openers = []string{
		"SHOCKING: ",
		"BREAKING: ",
		"A peer-reviewed study published in Nature found ",
		"According to official data, ",
		"You won't believe how ",
		"Researchers at the university reported ",
	}
	subjects = []string{
		"the new vaccine",
		"global temperatures",
		"the central bank",
		"a local school board",
		"artificial intelligence",
	}
	closers = []string{
		" changes everything!!!",
		" rose slightly over the past decade.",
		" is what they don't want you to know.",
		" according to a survey of 2,000 adults.",
	}
	domains = []string{"", "", "reuters.com", "apnews.com", "example-news.net"}
)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
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

var (
	scanIDsMu sync.Mutex
	scanIDs   []string
)

func main() {
	fmt.Println("=== credd Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Users: %d | Content variants: %d\n\n", numUsers, numVariants)

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

	fmt.Println("\n--- Phase 1: Seeding scans (POST /analyze) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doAnalyze(rng)
	})

	fmt.Println("\n--- Phase 2: Mixed load (60% analyze, 40% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doAnalyze(rng)
		case r < 0.75:
			return doHistory(rng)
		case r < 0.90:
			return doStats(rng)
		case r < 0.97:
			return doScan(rng)
		default:
			return doFeedback(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy load (10% analyze, 90% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doAnalyze(rng)
		case r < 0.50:
			return doHistory(rng)
		case r < 0.85:
			return doStats(rng)
		default:
			return doScan(rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
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

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func user(rng *rand.Rand) string {
	return fmt.Sprintf("user_%d", rng.Intn(numUsers))
}

func content(rng *rand.Rand) string {
	v := rng.Intn(numVariants)
	return openers[v%len(openers)] + subjects[(v/len(openers))%len(subjects)] +
		closers[(v/(len(openers)*len(subjects)))%len(closers)] + fmt.Sprintf(" #%d", v)
}

func doAnalyze(rng *rand.Rand) result {
	body := map[string]string{
		"content":       content(rng),
		"source_domain": domains[rng.Intn(len(domains))],
		"source_app":    "loadtest",
		"user_id_hash":  user(rng),
	}
	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/analyze", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /analyze", 0, lat, true}
	}
	defer resp.Body.Close()

	var scan struct {
		ID string `json:"id"`
	}
	if resp.StatusCode == http.StatusOK && json.NewDecoder(resp.Body).Decode(&scan) == nil && scan.ID != "" {
		scanIDsMu.Lock()
		if len(scanIDs) < 10000 {
			scanIDs = append(scanIDs, scan.ID)
		}
		scanIDsMu.Unlock()
	}
	io.Copy(io.Discard, resp.Body)
	return result{"POST /analyze", resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func randomScanID(rng *rand.Rand) string {
	scanIDsMu.Lock()
	defer scanIDsMu.Unlock()
	if len(scanIDs) == 0 {
		return "missing"
	}
	return scanIDs[rng.Intn(len(scanIDs))]
}

func get(endpoint, url string) result {
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != http.StatusOK}
}

func doHistory(rng *rand.Rand) result {
	return get("GET /history", fmt.Sprintf("%s/history?user_id_hash=%s&page=%d&page_size=20", baseURL, user(rng), rng.Intn(3)+1))
}

func doStats(rng *rand.Rand) result {
	return get("GET /stats", fmt.Sprintf("%s/stats?user_id_hash=%s&days=%d", baseURL, user(rng), rng.Intn(30)+1))
}

func doScan(rng *rand.Rand) result {
	return get("GET /scan", fmt.Sprintf("%s/scan?id=%s", baseURL, randomScanID(rng)))
}

func doFeedback(rng *rand.Rand) result {
	kinds := []string{"agree", "disagree", "report_error"}
	body := fmt.Sprintf(`{"scan_id":%q,"user_id_hash":%q,"feedback_type":%q}`, randomScanID(rng), user(rng), kinds[rng.Intn(len(kinds))])
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/feedback", "application/json", strings.NewReader(body))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /feedback", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /feedback", resp.StatusCode, lat, resp.StatusCode != http.StatusCreated}
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

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
