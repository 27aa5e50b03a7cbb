package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/lfcamargo/beautystock/internal/domain"
	"github.com/lfcamargo/beautystock/internal/ledger"
	"github.com/lfcamargo/beautystock/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const lineWidth = 45

// app drives the interactive session: menus, prompts and the cart loop.
// All free-text parsing and re-prompting happens here, never in the core.
type app struct {
	store    port.CatalogStore
	checkout port.Checkout
	cart     *domain.Cart

	in  *bufio.Scanner
	out io.Writer
	log *slog.Logger

	// Product names in the catalog are pt-BR, sort reports accordingly.
	collator *collate.Collator
}

func newApp(store port.CatalogStore, co port.Checkout, in io.Reader, out io.Writer, log *slog.Logger) *app {
	return &app{
		store:    store,
		checkout: co,
		cart:     domain.NewCart(),
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log,
		collator: collate.New(language.BrazilianPortuguese),
	}
}

func (a *app) run(ctx context.Context) error {
	for {
		if err := a.zeroStockReport(ctx); err != nil {
			a.log.Warn("zero stock report", "error", err)
		}

		a.header("MAIN MENU")
		a.printf("1 - Restock an existing product\n")
		a.printf("2 - Add a new product\n")
		a.printf("3 - Change a product price\n")
		a.printf("4 - Withdraw stock\n")
		a.printf("5 - Sell products (cart)\n")
		a.printf("0 - Exit\n")
		a.line()

		choice, err := a.readInt("Your option: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case 0:
			a.printf("Bye!\n")
			return nil
		case 1:
			a.handle(ctx, a.restock)
		case 2:
			a.handle(ctx, a.createProduct)
		case 3:
			a.handle(ctx, a.changePrice)
		case 4:
			a.handle(ctx, a.withdraw)
		case 5:
			a.handle(ctx, a.sell)
		default:
			a.printf("Invalid option, try again.\n")
		}
	}
}

// handle runs one menu action, printing domain failures instead of
// aborting the session. The catalog is untouched on any failed action.
func (a *app) handle(ctx context.Context, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		a.printf("ERROR: %s\n", describe(err))
	}
}

func (a *app) restock(ctx context.Context) error {
	led, _, err := a.selectLedger()
	if err != nil {
		return err
	}

	name, err := a.pickProduct(ctx, led)
	if err != nil {
		return err
	}

	delta, err := a.readInt("Quantity to add: ")
	if err != nil {
		return err
	}

	if err := led.IncreaseQuantity(ctx, name, delta); err != nil {
		return err
	}
	a.printf("Stock updated.\n")
	return nil
}

func (a *app) createProduct(ctx context.Context) error {
	led, _, err := a.selectLedger()
	if err != nil {
		return err
	}

	name, err := a.readLine("Product name: ")
	if err != nil {
		return err
	}

	quantity, err := a.readInt("Initial quantity: ")
	if err != nil {
		return err
	}

	price, err := a.readDecimal("Unit price: ")
	if err != nil {
		return err
	}

	if err := led.AddProduct(ctx, name, quantity, price); err != nil {
		return err
	}
	a.printf("Product %q added.\n", name)
	return nil
}

func (a *app) changePrice(ctx context.Context) error {
	led, _, err := a.selectLedger()
	if err != nil {
		return err
	}

	name, err := a.pickProduct(ctx, led)
	if err != nil {
		return err
	}

	current, err := led.Price(ctx, name)
	if err != nil {
		return err
	}
	a.printf("Current price: %s\n", current)

	price, err := a.readDecimal("New price: ")
	if err != nil {
		return err
	}

	if err := led.SetPrice(ctx, name, price); err != nil {
		return err
	}
	a.printf("Price updated.\n")
	return nil
}

func (a *app) withdraw(ctx context.Context) error {
	led, _, err := a.selectLedger()
	if err != nil {
		return err
	}

	name, err := a.pickProduct(ctx, led)
	if err != nil {
		return err
	}

	delta, err := a.readInt("Quantity to withdraw: ")
	if err != nil {
		return err
	}

	if err := led.DecreaseQuantity(ctx, name, delta); err != nil {
		return err
	}
	a.printf("Stock updated.\n")
	return nil
}

// sell stages purchases into the session cart, then commits them as
// stock decrements once the operator confirms.
func (a *app) sell(ctx context.Context) error {
	for {
		a.header("SHOPPING CART")

		led, origin, err := a.selectLedger()
		if err != nil {
			return err
		}

		name, err := a.pickProduct(ctx, led)
		if err != nil {
			return err
		}

		quantity, err := a.readPositiveInt("Quantity: ")
		if err != nil {
			return err
		}

		price, err := led.Price(ctx, name)
		if err != nil {
			return err
		}

		a.cart.AddLine(name, quantity, price, origin)
		a.displayCart()

		more, err := a.readYesNo("Add more products to the cart? (y/n): ")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	confirm, err := a.readYesNo("Confirm checkout? (y/n): ")
	if err != nil {
		return err
	}
	if !confirm {
		return nil
	}

	receipt, err := a.checkout.Commit(ctx, a.cart)
	if err != nil {
		return err
	}

	a.printf("Purchase completed. Receipt %s, total %s\n", receipt.ID, receipt.Total)
	a.cart = domain.NewCart()
	return nil
}

func (a *app) displayCart() {
	if a.cart.Empty() {
		a.printf("The cart is empty.\n")
		return
	}

	a.printf("Products in the cart:\n")
	for _, line := range a.cart.Lines {
		a.printf("%s - quantity: %d - price: %s - subtotal: %s\n",
			line.Name, line.Quantity, line.UnitPrice, line.Subtotal())
	}
	a.printf("Cart total: %s\n", a.cart.Total())
}

// zeroStockReport warns about sold-out products across every bucket
// before the main menu, names sorted for the operator.
func (a *app) zeroStockReport(ctx context.Context) error {
	for _, category := range domain.Categories() {
		for _, segment := range domain.SegmentsFor(category) {
			led, err := ledger.New(a.store, category, segment)
			if err != nil {
				return err
			}

			names, err := led.ZeroQuantityProducts(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				continue
			}

			a.collator.SortStrings(names)
			a.printf("Out of stock in %s/%s: %s\n", category, segment, strings.Join(names, ", "))
		}
	}
	return nil
}

// selectLedger walks the category and segment menus and resolves the
// matching ledger view.
func (a *app) selectLedger() (port.ProductLedger, domain.BucketRef, error) {
	categories := domain.Categories()

	a.header("CATEGORY")
	for i, c := range categories {
		a.printf("%d - %s\n", i+1, c)
	}
	a.line()

	ci, err := a.readRange("Your option: ", 1, len(categories))
	if err != nil {
		return nil, domain.BucketRef{}, err
	}
	category := categories[ci-1]

	segments := domain.SegmentsFor(category)

	a.header("SEGMENT")
	for i, s := range segments {
		a.printf("%d - %s\n", i+1, s)
	}
	a.line()

	si, err := a.readRange("Your option: ", 1, len(segments))
	if err != nil {
		return nil, domain.BucketRef{}, err
	}
	segment := segments[si-1]

	origin := domain.BucketRef{Category: category, Segment: segment}
	led, err := ledger.New(a.store, category, segment)
	if err != nil {
		return nil, domain.BucketRef{}, err
	}

	return led, origin, nil
}

// pickProduct lists the bucket and lets the operator choose by number.
func (a *app) pickProduct(ctx context.Context, led port.ProductLedger) (string, error) {
	details, err := led.ListDetails(ctx)
	if err != nil {
		return "", err
	}
	if len(details) == 0 {
		return "", errors.New("no products in this bucket yet")
	}

	a.header("PRODUCTS")
	for i, d := range details {
		a.printf("%d - %s (stock: %d, price: %s)\n", i+1, d.Name, d.Product.Quantity, d.Product.Price)
	}
	a.line()

	i, err := a.readRange("Your option: ", 1, len(details))
	if err != nil {
		return "", err
	}
	return details[i-1].Name, nil
}

func (a *app) readLine(prompt string) (string, error) {
	for {
		fmt.Fprint(a.out, prompt)
		if !a.in.Scan() {
			if err := a.in.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		text := strings.TrimSpace(a.in.Text())
		if text != "" {
			return text, nil
		}
		a.printf("Please type something.\n")
	}
}

// readInt re-prompts until the input parses, the malformed-input
// boundary the core never sees.
func (a *app) readInt(prompt string) (int, error) {
	for {
		text, err := a.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			a.printf("Please type a whole number.\n")
			continue
		}
		return n, nil
	}
}

func (a *app) readPositiveInt(prompt string) (int, error) {
	for {
		n, err := a.readInt(prompt)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return n, nil
		}
		a.printf("Please type a number greater than zero.\n")
	}
}

func (a *app) readRange(prompt string, min, max int) (int, error) {
	for {
		n, err := a.readInt(prompt)
		if err != nil {
			return 0, err
		}
		if n >= min && n <= max {
			return n, nil
		}
		a.printf("Invalid option, try again.\n")
	}
}

func (a *app) readDecimal(prompt string) (decimal.Decimal, error) {
	for {
		text, err := a.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			a.printf("Please type a number.\n")
			continue
		}
		return d, nil
	}
}

func (a *app) readYesNo(prompt string) (bool, error) {
	for {
		text, err := a.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(text) {
		case "y", "yes", "s":
			return true, nil
		case "n", "no":
			return false, nil
		}
		a.printf("Please answer y or n.\n")
	}
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) line() {
	fmt.Fprintln(a.out, strings.Repeat("-", lineWidth))
}

func (a *app) header(title string) {
	a.line()
	pad := (lineWidth - len(title)) / 2
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintf(a.out, "%s%s\n", strings.Repeat(" ", pad), title)
	a.line()
}

// describe maps the error taxonomy to operator-facing messages.
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return "product not found"
	case errors.Is(err, domain.ErrExistingProduct):
		return "this product already exists, restock it instead"
	case errors.Is(err, domain.ErrInvalidPrice):
		return "the price must be greater than zero"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "the quantity must not be negative"
	default:
		return err.Error()
	}
}
