// cmd/cli/main.go
//
// Terminal pager over the dashboard API: the same page/filter flow the
// browser front-end runs, driven from stdin. Useful for poking at a deployed
// instance without the UI.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/unclebandit/rfm-dashboard-backend/internal/client"
	"github.com/unclebandit/rfm-dashboard-backend/internal/model"
	"github.com/unclebandit/rfm-dashboard-backend/internal/pagination"
	"github.com/unclebandit/rfm-dashboard-backend/internal/query"
)

func main() {
	baseURL := flag.String("url", "http://localhost:3000", "dashboard API base URL")
	segment := flag.String("segment", "", "segment filter (empty = all)")
	customerID := flag.String("customer", "", "customer id filter (empty = all)")
	products := flag.Bool("products", false, "browse the product catalog instead of customers")
	flag.Parse()

	api := client.New(*baseURL)

	if *products {
		runProductGrid(api)
		return
	}
	pager := pagination.New(api, pagination.CustomerPageSize)

	if err := pager.ApplyFilter(query.Normalize(*segment, *customerID)); err != nil {
		log.Fatal("initial page load failed:", err)
	}
	render(pager)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("commands: n(ext), p(rev), f <segment> <customerId>, c(lear), q(uit)")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "n":
			err = pager.NextPage()
		case "p":
			err = pager.PrevPage()
		case "f":
			var seg, cid string
			if len(fields) > 1 {
				seg = fields[1]
			}
			if len(fields) > 2 {
				cid = fields[2]
			}
			err = pager.ApplyFilter(query.Normalize(seg, cid))
		case "c":
			err = pager.ClearFilter()
		case "q":
			return
		default:
			fmt.Println("unknown command:", fields[0])
			continue
		}
		if err != nil {
			fmt.Println("error:", err)
		}
		render(pager)
	}
}

// runProductGrid pages through the catalog the way the browser grid does:
// fetch the whole set once, then slice it locally in pages of
// pagination.ProductPageSize.
func runProductGrid(api *client.Client) {
	all, err := api.ListProducts(1000, 0)
	if err != nil {
		log.Fatal("failed to load products:", err)
	}

	page := 1
	totalPages := (len(all) + pagination.ProductPageSize - 1) / pagination.ProductPageSize
	if totalPages < 1 {
		totalPages = 1
	}
	renderProducts(all, page, totalPages)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("commands: n(ext), p(rev), q(uit)")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		switch strings.TrimSpace(scanner.Text()) {
		case "n":
			if page < totalPages {
				page++
			}
		case "p":
			if page > 1 {
				page--
			}
		case "q":
			return
		}
		renderProducts(all, page, totalPages)
	}
}

func renderProducts(all []model.ProductRecord, page, totalPages int) {
	start := (page - 1) * pagination.ProductPageSize
	end := start + pagination.ProductPageSize
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}

	for _, p := range all[start:end] {
		subtotal := float64(p.Quantity) * p.Price
		fmt.Printf("%-30s %3dx $%8.2f  $%9.2f  (%s)\n",
			p.ProductName, p.Quantity, p.Price, subtotal, p.CustomerID)
	}
	fmt.Printf("Page %d of %d (%d products)\n", page, totalPages, len(all))
}

func render(p *pagination.Pager) {
	switch p.State() {
	case pagination.StateError:
		fmt.Println("load failed:", p.Err())
		return
	case pagination.StateEmpty:
		fmt.Printf("no results (page %d of %d)\n", p.CurrentPage(), p.TotalPages())
		return
	}

	page := p.Page()
	if page == nil {
		return
	}

	fmt.Println(strings.Join(page.Columns, " | "))
	for _, row := range page.Rows {
		cells := make([]string, len(page.Columns))
		for i, col := range page.Columns {
			cells[i] = fmt.Sprintf("%v", row[col])
		}
		fmt.Println(strings.Join(cells, " | "))
	}
	fmt.Printf("Page %d of %d (%d customers) prev=%v next=%v\n",
		p.CurrentPage(), p.TotalPages(), p.TotalRows(), p.CanPrev(), p.CanNext())
}
