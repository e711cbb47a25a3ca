package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const serviceQueryInterval = time.Millisecond * 100

// AwaitService polls the target service until it answers an HTTP request, or until the
// timeout expires. Any HTTP status counts as an answer: the point is to find out whether
// the service is reachable before running a whole suite against it.
func AwaitService(client *http.Client, url string, timeout time.Duration, output io.Writer) error {
	if client == nil {
		client = http.DefaultClient
	}
	fmt.Fprintf(output, "Connecting to target service at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := client.Get(url)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			fmt.Fprintln(output)
			fmt.Fprintf(output, "Target service responded with status %d\n", resp.StatusCode)
			return nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(serviceQueryInterval)
	}
}
