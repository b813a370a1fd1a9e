// shopctl is a CLI for exercising the storefront API end to end. It plays
// the browser's role: the cart and login session live client-side in a
// state directory, and checkout hands the accumulated cart to the server.
//
// Commands:
//
//	shopctl products [-first N]
//	shopctl product <handle>
//	shopctl shop
//	shopctl cart add <handle> [-variant TITLE] [-qty N]
//	shopctl cart set <variant-id> <qty>
//	shopctl cart rm <variant-id>
//	shopctl cart show
//	shopctl cart clear
//	shopctl login -email ADDR -password PASS
//	shopctl logout
//	shopctl me
//	shopctl orders
//	shopctl order <id>
//	shopctl checkout
//
// Examples:
//
//	shopctl -api http://localhost:8080 products
//	shopctl cart add classic-tee -qty 2
//	shopctl login -email jo@example.com -password hunter22
//	shopctl checkout
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"storefront-api/internal/cart"
	"storefront-api/internal/kv"
	"storefront-api/internal/model"
	"storefront-api/internal/session"
	"storefront-api/internal/storefront"
)

var client = &http.Client{Timeout: 30 * time.Second}

var (
	apiURL   string
	stateDir string
)

func main() {
	flag.StringVar(&apiURL, "api", envOr("SHOPCTL_API", "http://localhost:8080"), "storefront API base URL")
	flag.StringVar(&stateDir, "state", defaultStateDir(), "directory for cart and session state")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "products":
		err = runProducts(args[1:])
	case "product":
		err = runProduct(args[1:])
	case "shop":
		err = runShop()
	case "cart":
		err = runCart(args[1:])
	case "login":
		err = runLogin(args[1:])
	case "logout":
		err = runLogout()
	case "me":
		err = runMe()
	case "orders":
		err = runOrders()
	case "order":
		err = runOrder(args[1:])
	case "checkout":
		err = runCheckout()
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `shopctl - storefront API test client

Usage:
  shopctl [-api URL] [-state DIR] <command> [options]

Commands:
  products   List catalog products
  product    Show one product by handle
  shop       Show store metadata
  cart       Manage the local cart (add, set, rm, show, clear)
  login      Log in and save the session locally
  logout     Revoke the session and clear it locally
  me         Show the logged-in customer
  orders     List the customer's orders
  order      Show one order by ID or order number
  checkout   Create a checkout from the local cart
`)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "shopctl")
	}
	return ".shopctl"
}

// store opens the file-backed state store both the cart and session use.
func store() (kv.Store, error) {
	return kv.NewFileStore(stateDir)
}

// === HTTP helpers ===

// apiDo performs one facade request. token is added as X-Access-Token when
// non-empty. A non-2xx response is returned as an error carrying the
// server's flat error message.
func apiDo(method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("X-Access-Token", token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (HTTP %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// currentSession loads the saved session, failing when none exists.
func currentSession() (*session.Session, error) {
	st, err := store()
	if err != nil {
		return nil, err
	}
	s, err := session.Load(st, time.Now())
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("not logged in (run: shopctl login)")
	}
	return s, nil
}

// === Catalog commands ===

func runProducts(args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	first := fs.Int("first", 0, "page size")
	fs.Parse(args)

	path := "/products"
	if *first > 0 {
		path += "?first=" + strconv.Itoa(*first)
	}

	var out struct {
		Products []model.Product `json:"products"`
	}
	if err := apiDo(http.MethodGet, path, "", nil, &out); err != nil {
		return err
	}

	for _, p := range out.Products {
		stock := "in stock"
		if !p.InStock {
			stock = "sold out"
		}
		fmt.Printf("%3d  %-32s %10s  %s\n", p.NumericID, p.Handle, p.Price, stock)
	}
	return nil
}

func runProduct(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shopctl product <handle>")
	}

	var out struct {
		Product model.Product `json:"product"`
	}
	if err := apiDo(http.MethodGet, "/products/"+url.PathEscape(args[0]), "", nil, &out); err != nil {
		return err
	}

	p := out.Product
	fmt.Printf("%s (%s)\n%s\n\n%s\n\nVariants:\n", p.Name, p.Price, p.ID, p.Description)
	for _, v := range p.Variants {
		avail := "available"
		if !v.AvailableForSale {
			avail = "unavailable"
		}
		fmt.Printf("  %-24s %10s  %-11s  %s\n", v.Title, v.Price, avail, v.ID)
	}
	return nil
}

func runShop() error {
	var shop model.Shop
	if err := apiDo(http.MethodGet, "/shop", "", nil, &shop); err != nil {
		return err
	}
	fmt.Println(shop.Name)
	if shop.LogoURL != "" {
		fmt.Println(shop.LogoURL)
	}
	return nil
}

// === Cart commands ===

func openCart() (*cart.Persistent, error) {
	st, err := store()
	if err != nil {
		return nil, err
	}
	return cart.Open(st)
}

func runCart(args []string) error {
	if len(args) == 0 {
		return runCartShow()
	}
	switch args[0] {
	case "add":
		return runCartAdd(args[1:])
	case "set":
		return runCartSet(args[1:])
	case "rm":
		return runCartRemove(args[1:])
	case "show":
		return runCartShow()
	case "clear":
		return runCartClear()
	default:
		return fmt.Errorf("unknown cart command: %s", args[0])
	}
}

func runCartAdd(args []string) error {
	fs := flag.NewFlagSet("cart add", flag.ExitOnError)
	variantTitle := fs.String("variant", "", "variant title (defaults to the first available)")
	qty := fs.Int("qty", 1, "quantity")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: shopctl cart add <handle> [-variant TITLE] [-qty N]")
	}
	handle := fs.Arg(0)

	var out struct {
		Product model.Product `json:"product"`
	}
	if err := apiDo(http.MethodGet, "/products/"+url.PathEscape(handle), "", nil, &out); err != nil {
		return err
	}

	variant, err := pickVariant(out.Product, *variantTitle)
	if err != nil {
		return err
	}

	c, err := openCart()
	if err != nil {
		return err
	}
	if err := c.AddLine(variant, *qty); err != nil {
		return err
	}

	fmt.Printf("added %s × %d\n", variant.Title, *qty)
	return runCartShow()
}

func pickVariant(p model.Product, title string) (model.Variant, error) {
	if len(p.Variants) == 0 {
		return model.Variant{}, fmt.Errorf("product %q has no variants", p.Handle)
	}
	if title == "" {
		for _, v := range p.Variants {
			if v.AvailableForSale {
				return v, nil
			}
		}
		return model.Variant{}, fmt.Errorf("no variant of %q is available", p.Handle)
	}
	for _, v := range p.Variants {
		if v.Title == title {
			return v, nil
		}
	}
	return model.Variant{}, fmt.Errorf("no variant %q on product %q", title, p.Handle)
}

func runCartSet(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: shopctl cart set <variant-id> <qty>")
	}
	qty, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity: %s", args[1])
	}

	c, err := openCart()
	if err != nil {
		return err
	}
	if err := c.SetQuantity(args[0], qty); err != nil {
		return err
	}
	return runCartShow()
}

func runCartRemove(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shopctl cart rm <variant-id>")
	}

	c, err := openCart()
	if err != nil {
		return err
	}
	if err := c.RemoveLine(args[0]); err != nil {
		return err
	}
	return runCartShow()
}

func runCartShow() error {
	c, err := openCart()
	if err != nil {
		return err
	}

	lines := c.Lines()
	if len(lines) == 0 {
		fmt.Println("cart is empty")
		return nil
	}
	for _, line := range lines {
		fmt.Printf("%3d × %-32s %10s  %s\n",
			line.Quantity, line.Title,
			model.FormatMinor(line.UnitPriceMinor*int64(line.Quantity), line.Currency),
			line.VariantID)
	}
	fmt.Printf("total: %s (%d items)\n", c.TotalPrice(), c.TotalItems())
	return nil
}

func runCartClear() error {
	c, err := openCart()
	if err != nil {
		return err
	}
	if err := c.Clear(); err != nil {
		return err
	}
	fmt.Println("cart cleared")
	return nil
}

// === Auth and account commands ===

func runLogin(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return fmt.Errorf("usage: shopctl login -email ADDR -password PASS")
	}

	var out struct {
		AccessToken string         `json:"accessToken"`
		ExpiresAt   time.Time      `json:"expiresAt"`
		Customer    model.Customer `json:"customer"`
	}
	err := apiDo(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    *email,
		"password": *password,
	}, &out)
	if err != nil {
		return err
	}

	st, err := store()
	if err != nil {
		return err
	}
	err = session.Save(st, session.Session{
		Token:     out.AccessToken,
		ExpiresAt: out.ExpiresAt,
		Customer:  out.Customer,
	})
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s %s (until %s)\n",
		out.Customer.FirstName, out.Customer.LastName,
		out.ExpiresAt.Local().Format(time.RFC822))
	return nil
}

func runLogout() error {
	s, err := currentSession()
	if err != nil {
		return err
	}

	if err := apiDo(http.MethodPost, "/auth/logout", "", map[string]string{
		"accessToken": s.Token,
	}, nil); err != nil {
		return err
	}

	st, err := store()
	if err != nil {
		return err
	}
	if err := session.Clear(st); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func runMe() error {
	s, err := currentSession()
	if err != nil {
		return err
	}

	var out struct {
		Customer model.Customer `json:"customer"`
	}
	if err := apiDo(http.MethodGet, "/auth/me", s.Token, nil, &out); err != nil {
		return err
	}

	c := out.Customer
	fmt.Printf("%s %s <%s>\n", c.FirstName, c.LastName, c.Email)
	if c.Phone != "" {
		fmt.Println(c.Phone)
	}
	return nil
}

func runOrders() error {
	s, err := currentSession()
	if err != nil {
		return err
	}

	var out struct {
		Orders []model.Order `json:"orders"`
	}
	if err := apiDo(http.MethodGet, "/account/orders", s.Token, nil, &out); err != nil {
		return err
	}

	if len(out.Orders) == 0 {
		fmt.Println("no orders")
		return nil
	}
	for _, o := range out.Orders {
		fmt.Printf("%-10s %s  %s %s  %s/%s\n",
			o.Name, o.CreatedAt.Local().Format("2006-01-02"),
			o.TotalPrice, o.Currency,
			o.FinancialStatus, o.FulfillmentStatus)
	}
	return nil
}

func runOrder(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: shopctl order <id>")
	}

	s, err := currentSession()
	if err != nil {
		return err
	}

	var out struct {
		Order model.OrderDetail `json:"order"`
	}
	if err := apiDo(http.MethodGet, "/account/orders/"+url.PathEscape(args[0]), s.Token, nil, &out); err != nil {
		return err
	}

	o := out.Order
	fmt.Printf("%s (#%d): %s %s\n", o.Name, o.OrderNumber, o.TotalPrice, o.Currency)
	fmt.Printf("placed %s, %s/%s\n",
		o.CreatedAt.Local().Format(time.RFC822), o.FinancialStatus, o.FulfillmentStatus)
	for _, item := range o.LineItems {
		fmt.Printf("  %d × %-32s %s %s\n", item.Quantity, item.Title, item.Price, item.Currency)
	}
	return nil
}

// === Checkout ===

// runCheckout hands the local cart to the server and prints the hosted
// checkout URL. The logged-in customer, if any, is attached for prefill.
// The local cart is cleared on success, matching what the browser does.
func runCheckout() error {
	c, err := openCart()
	if err != nil {
		return err
	}

	if c.Len() == 0 {
		return fmt.Errorf("cart is empty")
	}

	req := storefront.CreateCartRequest{Lines: c.CheckoutLines()}

	st, err := store()
	if err != nil {
		return err
	}
	if s, err := session.Load(st, time.Now()); err == nil && s != nil {
		req.Customer = &storefront.CustomerInfo{
			Email:     s.Customer.Email,
			FirstName: s.Customer.FirstName,
			LastName:  s.Customer.LastName,
			Phone:     s.Customer.Phone,
		}
	}

	var out struct {
		Checkout model.Checkout `json:"checkout"`
	}
	if err := apiDo(http.MethodPost, "/checkout/create", "", req, &out); err != nil {
		return err
	}

	if err := c.Clear(); err != nil {
		return err
	}

	fmt.Printf("checkout created: %s\ntotal %s %s\nopen: %s\n",
		out.Checkout.ID,
		out.Checkout.TotalPrice.Amount, out.Checkout.TotalPrice.CurrencyCode,
		out.Checkout.WebURL)
	return nil
}
