package httputil_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/matzehuels/npmregistry/pkg/errors"
	"github.com/matzehuels/npmregistry/pkg/httputil"
)

func ExampleClient_Get() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"eventemitter3","dist-tags":{"latest":"5.0.1"}}`)
	}))
	defer srv.Close()

	client := httputil.NewClient(httputil.Options{})

	var doc struct {
		Name     string            `json:"name"`
		DistTags map[string]string `json:"dist-tags"`
	}
	if err := client.Get(context.Background(), srv.URL+"/eventemitter3", &doc); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("Name:", doc.Name)
	fmt.Println("Latest:", doc.DistTags["latest"])
	// Output:
	// Name: eventemitter3
	// Latest: 5.0.1
}

func ExampleClient_Get_notFound() {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	client := httputil.NewClient(httputil.Options{})

	var doc map[string]any
	err := client.Get(context.Background(), srv.URL+"/missing", &doc)
	fmt.Println("Code:", errors.GetCode(err))
	// Output:
	// Code: NOT_FOUND
}
