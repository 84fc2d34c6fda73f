package core_test

import (
	"context"
	"fmt"
	"os"

	"github.com/relink/relink/pkg/core"
)

func ExampleRewrite() {
	out, changed, err := core.Rewrite("home.example.com", `<a href="https://home.example.com/about">About</a>`)
	if err != nil {
		panic(err)
	}
	fmt.Println(out, changed)
	// Output: <a href="/about">About</a> true
}

// ExampleVerify shows how to check a published tree before deploying it.
func ExampleVerify() {
	cfg := core.Config{
		Root:            "public",
		Domain:          "home.example.com",
		DefaultExcludes: true,
		MaxBytes:        8 << 20,
	}
	res, err := core.Verify(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify failed: %v\n", err)
		return
	}
	if len(res.Findings) == 0 {
		fmt.Println("all links are local")
		return
	}
	_ = core.MarshalFindings(os.Stdout, res.Findings)
}
