package shop

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bnema/shopscript-cli/internal/api"
	"github.com/bnema/shopscript-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func RenderCart(cart *domain.Cart) (string, error) {
	return render(func(s styles) string { return cartView(cart, s) })
}

func RenderCustomer(customer domain.Customer) (string, error) {
	return render(func(s styles) string { return customerView(customer, s) })
}

func RenderSession(profile string, status api.SessionStatus, now time.Time) (string, error) {
	return render(func(s styles) string { return sessionView(profile, status, now, s) })
}

func RenderProducts(page domain.ProductPage) (string, error) {
	return render(func(s styles) string { return productsView(page, s) })
}

func RenderProduct(product domain.Product) (string, error) {
	return render(func(s styles) string { return productView(product, s) })
}

func RenderOrders(orders []domain.Order) (string, error) {
	return render(func(s styles) string { return ordersView(orders, s) })
}

func RenderOrder(order domain.Order) (string, error) {
	return render(func(s styles) string { return orderView(order, s) })
}

func RenderCheckout(result domain.CheckoutResult) (string, error) {
	return render(func(s styles) string { return checkoutView(result, s) })
}

// RenderProfiles marks the active profile with an asterisk.
func RenderProfiles(profiles []domain.Profile, active string) (string, error) {
	return render(func(s styles) string { return profilesView(profiles, active, s) })
}

func RenderError(err *domain.APIError) (string, error) {
	return render(func(s styles) string { return errorView(err, s) })
}

func cartView(cart *domain.Cart, s styles) string {
	if cart == nil || cart.IsEmpty() {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Cart"),
			s.empty.Render("Your cart is empty."),
		)
	}

	lines := []string{
		s.title.Render("Cart"),
		s.header.Render(fmt.Sprintf("items: %d", cart.ItemCount)),
	}
	for _, item := range cart.Items {
		lines = append(lines, itemLine(item, cart.Currency, s))
	}

	totals := []string{s.detail.Render("subtotal: " + money(cart.Subtotal, cart.Currency))}
	if cart.CouponCode != "" || cart.Discount != 0 {
		totals = append(totals, s.good.Render(fmt.Sprintf("discount: -%s (%s)", money(cart.Discount, cart.Currency), couponLabel(cart.CouponCode))))
	}
	totals = append(totals, s.total.Render("total: "+money(cart.Total, cart.Currency)))

	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, totals...)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func itemLine(item domain.CartItem, currency string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.muted.Render(fmt.Sprintf("[%s] ", item.ID)),
		s.name.Render(item.Name),
		s.detail.Render(fmt.Sprintf(" x%d ", item.Quantity)),
		s.price.Render(money(item.Total, currency)),
	)
}

func couponLabel(code string) string {
	if code == "" {
		return "no coupon"
	}
	return "coupon " + code
}

func customerView(customer domain.Customer, s styles) string {
	lines := []string{
		s.name.Render(customer.DisplayName()),
		s.detail.Render("email: " + customer.Email),
	}
	if customer.Phone != "" {
		lines = append(lines, s.detail.Render("phone: "+customer.Phone))
	}
	lines = append(lines, s.muted.Render(fmt.Sprintf("customer id: %d", customer.ID)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionView(profile string, status api.SessionStatus, now time.Time, s styles) string {
	lines := []string{
		s.title.Render("Session"),
		s.header.Render("profile: " + profile),
	}

	if !status.Authenticated {
		lines = append(lines, s.empty.Render("Not signed in."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.good.Render("signed in"))

	switch {
	case status.ExpiresAt.IsZero():
		lines = append(lines, s.muted.Render("access token: expiry unknown"))
	case status.Expired:
		lines = append(lines, s.warning.Render("access token: expired "+formatRelative(status.ExpiresAt, now)))
	default:
		lines = append(lines, s.detail.Render("access token: expires "+formatRelative(status.ExpiresAt, now)))
	}

	if status.HasRefreshToken {
		lines = append(lines, s.detail.Render("refresh token: present"))
	} else {
		lines = append(lines, s.warning.Render("refresh token: missing"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func productsView(page domain.ProductPage, s styles) string {
	lines := []string{
		s.title.Render("Products"),
		s.header.Render(pageLabel(page)),
	}
	if len(page.Products) == 0 {
		lines = append(lines, s.empty.Render("No products found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, product := range page.Products {
		lines = append(lines, productLine(product, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func pageLabel(page domain.ProductPage) string {
	if page.PerPage <= 0 {
		return fmt.Sprintf("products: %d", len(page.Products))
	}
	pages := int(math.Ceil(float64(page.Total) / float64(page.PerPage)))
	if pages < 1 {
		pages = 1
	}
	return fmt.Sprintf("page %d of %d (%d products)", max(page.Page, 1), pages, page.Total)
}

func productLine(product domain.Product, s styles) string {
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		s.muted.Render(fmt.Sprintf("#%d ", product.ID)),
		s.name.Render(product.Name),
		" ",
		s.price.Render(money(product.Price, product.Currency)),
	)
	if !product.InStock {
		line += " " + s.warning.Render("[out of stock]")
	}
	return line
}

func productView(product domain.Product, s styles) string {
	lines := []string{productLine(product, s)}
	if product.SKU != "" {
		lines = append(lines, s.muted.Render("sku: "+product.SKU))
	}
	if desc := strings.TrimSpace(product.Description); desc != "" {
		lines = append(lines, s.section.Render(s.detail.Render(desc)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func ordersView(orders []domain.Order, s styles) string {
	lines := []string{
		s.title.Render("Orders"),
		s.header.Render(fmt.Sprintf("orders: %d", len(orders))),
	}
	if len(orders) == 0 {
		lines = append(lines, s.empty.Render("No orders yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, order := range orders {
		lines = append(lines, orderLine(order, s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func orderLine(order domain.Order, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.name.Render(orderTitle(order)),
		" ",
		s.detail.Render(order.Status),
		" ",
		s.price.Render(money(order.Total, order.Currency)),
		" ",
		s.muted.Render(formatDate(order.CreatedAt)),
	)
}

func orderTitle(order domain.Order) string {
	if order.Number != "" {
		return "Order " + order.Number
	}
	return fmt.Sprintf("Order #%d", order.ID)
}

func orderView(order domain.Order, s styles) string {
	lines := []string{orderLine(order, s)}
	for _, item := range order.Items {
		lines = append(lines, itemLine(item, order.Currency, s))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func checkoutView(result domain.CheckoutResult, s styles) string {
	lines := []string{s.title.Render(orderTitle(result.Order))}
	if result.Confirmed {
		lines = append(lines, s.good.Render("order confirmed"))
	} else {
		lines = append(lines, s.warning.Render("awaiting payment"))
	}
	lines = append(lines, s.total.Render("total: "+money(result.Order.Total, result.Order.Currency)))
	if result.PaymentURL != "" {
		lines = append(lines, s.detail.Render("pay at: "+result.PaymentURL))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func profilesView(profiles []domain.Profile, active string, s styles) string {
	lines := []string{s.title.Render("Profiles")}
	if len(profiles) == 0 {
		lines = append(lines, s.empty.Render("No profiles configured. Add one with `ss profile add`."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	sorted := append([]domain.Profile(nil), profiles...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, profile := range sorted {
		marker := "  "
		name := s.detail.Render(profile.Name)
		if profile.Name == active {
			marker = "* "
			name = s.name.Render(profile.Name)
		}
		lines = append(lines, marker+name+" "+s.muted.Render(profile.BaseURL))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func errorView(err *domain.APIError, s styles) string {
	if err == nil {
		return ""
	}

	lines := []string{s.warning.Render(errorHeadline(err))}
	if err.RetryAfterSeconds > 0 {
		lines = append(lines, s.detail.Render(fmt.Sprintf("try again in %d seconds", err.RetryAfterSeconds)))
	}

	fields := make([]string, 0, len(err.FieldErrors))
	for field := range err.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		lines = append(lines, s.detail.Render(fmt.Sprintf("  %s: %s", field, strings.Join(err.FieldErrors[field], ", "))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func errorHeadline(err *domain.APIError) string {
	switch err.Kind {
	case domain.KindNetwork:
		return "Could not reach the shop. Check your connection and try again."
	case domain.KindAuthentication:
		return "You need to sign in first: run `ss login`."
	case domain.KindSessionExpired:
		return "Your session has expired. Sign in again with `ss login`."
	case domain.KindNotFound:
		if err.Resource != "" {
			return strings.ToUpper(err.Resource[:1]) + err.Resource[1:] + " not found."
		}
		return "Not found."
	case domain.KindRateLimited:
		return "Too many requests."
	case domain.KindServer:
		return "The shop is having trouble right now. Please try again later."
	default:
		if err.Message != "" {
			return err.Message
		}
		return "Something went wrong."
	}
}

func money(amount float64, currency string) string {
	if currency == "" {
		return fmt.Sprintf("%.2f", amount)
	}
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

func formatRelative(at, now time.Time) string {
	if now.IsZero() {
		return "at " + at.Format(time.RFC3339)
	}

	d := at.Sub(now)
	past := d < 0
	if past {
		d = -d
	}

	var amount string
	switch {
	case d < time.Minute:
		amount = "less than a minute"
	case d < time.Hour:
		amount = plural(int(math.Ceil(d.Minutes())), "minute")
	case d < 24*time.Hour:
		amount = plural(int(math.Ceil(d.Hours())), "hour")
	default:
		amount = plural(int(math.Ceil(d.Hours()/24)), "day")
	}

	if past {
		return amount + " ago"
	}
	return "in " + amount
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
