package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"ssg-pdp/adapters"
	"ssg-pdp/internal/types"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_page <product page url>")
	}

	config := types.DefaultConfig()
	config.RequestDelay = 0

	logger := &debugLogger{}

	adapter := adapters.NewSSGAdapter(config, logger)
	defer adapter.Close()

	doc, err := adapter.LoadDocument(context.Background(), os.Args[1])
	if err != nil {
		log.Printf("Failed to load page: %v", err)
		return
	}

	fmt.Println("=== Meta tags ===")
	for name, content := range adapters.ExtractMetaTags(doc) {
		fmt.Printf("  %s = %q\n", name, content)
	}
	fmt.Printf("Eligible SSG page: %v\n", adapters.IsSSGPage(doc))

	productDetails := doc.FindOne(adapters.ProductDetailsSelector)
	if productDetails == nil {
		fmt.Println("No product details block found")
		return
	}

	fmt.Println("\n=== Section headings ===")
	for i, heading := range productDetails.FindAll("h1, h2") {
		id, _ := heading.Attr("id")
		fmt.Printf("  %d: id='%s', text='%s'\n", i+1, id, heading.Text())
	}

	details := adapter.ParseProductDetails(doc)
	fmt.Println("\n=== Parsed details ===")
	fmt.Printf("Name: %q\n", details.Name)
	fmt.Printf("Images: %d\n", len(details.Images))
	fmt.Printf("Description: %d characters\n", len(details.Description))
	fmt.Printf("Options: %d\n", len(details.Options))
	fmt.Printf("Price text: %q -> %+v\n", details.PriceText, adapters.ParsePrice(details.PriceText))
	if details.OptionsErr != nil {
		fmt.Printf("Option errors: %v\n", details.OptionsErr)
	}
}

type debugLogger struct{}

func (d *debugLogger) Debug(args ...interface{})                 { fmt.Println(args...) }
func (d *debugLogger) Info(args ...interface{})                  { fmt.Println(args...) }
func (d *debugLogger) Warn(args ...interface{})                  { fmt.Println(args...) }
func (d *debugLogger) Error(args ...interface{})                 { fmt.Println(args...) }
func (d *debugLogger) Debugf(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Infof(format string, args ...interface{})  { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Warnf(format string, args ...interface{})  { fmt.Printf(format+"\n", args...) }
func (d *debugLogger) Errorf(format string, args ...interface{}) { fmt.Printf(format+"\n", args...) }
