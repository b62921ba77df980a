// Package checker scans bookmark URLs for link rot. It runs over a loaded
// snapshot and never mutates the repository, so it stays outside the
// single-writer engine.
package checker

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/stashd/stash/internal/model"
)

// Status classifies the outcome of checking a single URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
	Excluded                  // 404 on an excluded domain, likely auth-gated
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	case Unreachable:
		return "unreachable"
	case Excluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// Result holds the check outcome for a single bookmark.
type Result struct {
	Bookmark   model.Bookmark
	Status     Status
	StatusCode int    // HTTP status code (0 if the connection failed)
	Detail     string // human-readable reason for non-healthy results
}

// Report aggregates the results of a full check run. Results keep the
// input order of the bookmarks.
type Report struct {
	Results []Result
	counts  map[Status]int
}

// Count returns how many results landed in the given status.
func (r Report) Count(s Status) int {
	return r.counts[s]
}

// Problems returns the dead and unreachable results, dead first.
// Excluded domains are deliberately left out, a 404 there says nothing.
func (r Report) Problems() []Result {
	var dead, unreachable []Result
	for _, res := range r.Results {
		switch res.Status {
		case Dead:
			dead = append(dead, res)
		case Unreachable:
			unreachable = append(unreachable, res)
		}
	}
	return append(dead, unreachable...)
}

// ProgressFunc is called after each URL is checked.
// completed is the number of URLs checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// Options tunes a check run. Zero values fall back to the defaults.
type Options struct {
	Concurrency    int           // parallel requests, default 8
	Timeout        time.Duration // per-request timeout, default 10s
	ExcludeDomains []string      // domains where 404 means auth-gated, not dead
	OnProgress     ProgressFunc
}

const (
	defaultConcurrency = 8
	defaultTimeout     = 10 * time.Second
)

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = defaultConcurrency
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return o
}

// Check checks all bookmark URLs concurrently and returns an aggregated
// report in input order.
func Check(bookmarks []model.Bookmark, opts Options) Report {
	report := Report{counts: make(map[Status]int)}
	if len(bookmarks) == 0 {
		return report
	}
	opts = opts.withDefaults()

	// Suppress noisy HTTP client logging (protocol errors, unsolicited responses, etc.)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	excluded := make(map[string]bool)
	for _, domain := range opts.ExcludeDomains {
		excluded[strings.ToLower(domain)] = true
	}

	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Follow redirects but limit to 10
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	report.Results = make([]Result, len(bookmarks))
	jobs := make(chan int, len(bookmarks))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < opts.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				report.Results[idx] = checkURL(client, bookmarks[idx], excluded)

				if opts.OnProgress != nil {
					progressMu.Lock()
					completed++
					opts.OnProgress(completed, len(bookmarks))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range bookmarks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, res := range report.Results {
		report.counts[res.Status]++
	}
	return report
}

// checkURL checks a single URL, trying HEAD first and falling back to GET
// for servers that reject HEAD.
func checkURL(client *http.Client, bookmark model.Bookmark, excluded map[string]bool) Result {
	result := Result{Bookmark: bookmark}

	resp, err := client.Head(bookmark.URL)
	if err != nil {
		resp, err = client.Get(bookmark.URL)
		if err != nil {
			result.Status = Unreachable
			result.Detail = classifyError(err)
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		if isExcludedDomain(bookmark.URL, excluded) {
			result.Status = Excluded
			result.Detail = "possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 500s and auth walls may be transient, keep them out of the dead pile
		result.Status = Unreachable
		result.Detail = http.StatusText(resp.StatusCode)
	}

	return result
}

// isExcludedDomain reports whether the URL's host is an excluded domain
// or a subdomain of one.
func isExcludedDomain(rawURL string, excluded map[string]bool) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Host)
	if excluded[host] {
		return true
	}
	for domain := range excluded {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// classifyError maps transport errors onto short readable reasons.
func classifyError(err error) string {
	var dnsErr *net.DNSError
	var certErr *tls.CertificateVerificationError

	switch {
	case errors.As(err, &dnsErr):
		return "DNS failure"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.Is(err, syscall.ENETUNREACH):
		return "network unreachable"
	case errors.As(err, &certErr):
		return "TLS/certificate error"
	default:
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "timeout"
		}
		if strings.Contains(err.Error(), "tls:") {
			return "TLS error"
		}
		return err.Error()
	}
}
