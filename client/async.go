package client

import (
	"context"

	"github.com/papercomputeco/kazama/pkg/llm"
)

// Call is any Client operation bound to its arguments.
type Call func(ctx context.Context) (llm.Response, error)

// Result is the outcome of a Call run with Async.
type Result struct {
	Response llm.Response
	Err      error
}

// Async runs call on its own goroutine. The returned channel receives exactly
// one Result and is then closed, so it can be used in a select alongside other
// calls or ctx.Done().
//
//	chat := client.Async(ctx, func(ctx context.Context) (llm.Response, error) {
//	    return c.ChatCompletion(ctx, "gemma:2b", "Hello!", "user")
//	})
//	tags := client.Async(ctx, c.ListModels)
//	fmt.Println((<-chat).Response, (<-tags).Response)
func Async(ctx context.Context, call Call) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		resp, err := call(ctx)
		out <- Result{Response: resp, Err: err}
	}()
	return out
}
