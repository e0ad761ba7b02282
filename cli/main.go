package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#E8590C")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)

	userStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0a84ff"))
	assistantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E8590C"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Model defines the application state
type Model struct {
	mainMenu        list.Model
	restaurantTable table.Model
	menuTable       table.Model
	orderList       list.Model
	recommendTable  table.Model
	orderDetail     Order
	draft           Order
	health          *Health
	restaurants     []Restaurant
	chat            []ChatTurn
	suggestions     []string
	textInput       textinput.Model
	spinner         spinner.Model
	client          *ApiClient
	loading         bool
	currentView     string
	status          string
	error           string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	items := []list.Item{
		item{title: "Restaurants", desc: "Browse restaurants and their menus"},
		item{title: "Orders", desc: "Place and track orders"},
		item{title: "Recommendations", desc: "Get dishes that match your preferences"},
		item{title: "Chat", desc: "Talk to the food assistant"},
		item{title: "Health", desc: "Check the assistant service"},
		item{title: "Exit", desc: "Exit the application"},
	}

	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Food Assistant"

	orderList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	orderList.Title = "Orders"

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 60

	return Model{
		mainMenu: mainMenu,
		restaurantTable: newTable([]table.Column{
			{Title: "ID", Width: 10},
			{Title: "Name", Width: 14},
			{Title: "Cuisine", Width: 12},
			{Title: "Rating", Width: 7},
			{Title: "Delivery", Width: 12},
			{Title: "Fee", Width: 7},
		}),
		menuTable: newTable([]table.Column{
			{Title: "Item", Width: 28},
			{Title: "Category", Width: 12},
			{Title: "Price", Width: 8},
			{Title: "Ingredients", Width: 40},
		}),
		recommendTable: newTable([]table.Column{
			{Title: "Dish", Width: 26},
			{Title: "Restaurant", Width: 10},
			{Title: "Price", Width: 8},
			{Title: "Why", Width: 50},
		}),
		orderList:   orderList,
		spinner:     s,
		textInput:   ti,
		client:      NewApiClient(),
		currentView: "main",
	}
}

func newTable(columns []table.Column) table.Model {
	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

func (m Model) focusInput(placeholder string) Model {
	m.textInput.SetValue("")
	m.textInput.Placeholder = placeholder
	m.textInput.Focus()
	return m
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
		m.orderList.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil
	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	case healthMsg:
		m.loading = false
		m.health = msg.health
		return m, nil
	case restaurantsMsg:
		m.loading = false
		m.restaurants = msg.restaurants
		m.restaurantTable.SetRows(restaurantRows(msg.restaurants))
		return m, nil
	case menuMsg:
		m.loading = false
		m.menuTable.SetRows(menuRows(msg.items))
		return m, nil
	case ordersMsg:
		m.loading = false
		m.orderList.SetItems(convertOrdersToItems(msg.orders))
		return m, nil
	case orderDetailMsg:
		m.loading = false
		m.orderDetail = msg.order
		return m, nil
	case orderPlacedMsg:
		m.loading = false
		m.draft = Order{}
		m.status = fmt.Sprintf("Order %s placed, total $%.2f", msg.order.ID, msg.order.Total)
		m.currentView = "orders"
		return m, fetchOrders(m.client)
	case recommendationsMsg:
		m.loading = false
		m.recommendTable.SetRows(recommendationRows(msg.recommendations))
		return m, nil
	case chatReplyMsg:
		m.loading = false
		m.chat = append(m.chat, ChatTurn{Type: "assistant", Content: msg.reply.Response})
		m.suggestions = msg.reply.Suggestions
		return m, nil
	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "restaurants":
		m.restaurantTable, cmd = m.restaurantTable.Update(msg)
	case "menu":
		m.menuTable, cmd = m.menuTable.Update(msg)
	case "orders":
		m.orderList, cmd = m.orderList.Update(msg)
	case "recommend":
		if m.textInput.Focused() {
			m.textInput, cmd = m.textInput.Update(msg)
		} else {
			m.recommendTable, cmd = m.recommendTable.Update(msg)
		}
	case "create_order", "chat":
		m.textInput, cmd = m.textInput.Update(msg)
	}

	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	inputView := m.currentView == "create_order" || m.currentView == "chat" ||
		(m.currentView == "recommend" && m.textInput.Focused())

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true
	case "q":
		if !inputView {
			return m, tea.Quit, true
		}
	case "esc":
		m.error = ""
		switch m.currentView {
		case "main":
		case "menu":
			m.currentView = "restaurants"
		case "order_detail", "create_order":
			m.currentView = "orders"
			m.textInput.Blur()
			return m, fetchOrders(m.client), true
		default:
			m.textInput.Blur()
			m.currentView = "main"
		}
		return m, nil, true
	case "enter":
		return m.handleEnter()
	case "n":
		if m.currentView == "orders" {
			m.currentView = "create_order"
			m.draft = Order{}
			m.error = ""
			m = m.focusInput("Big Mac,5.99,2")
			return m, nil, true
		}
	case "r":
		switch m.currentView {
		case "orders":
			return m, fetchOrders(m.client), true
		case "order_detail":
			return m, fetchOrderDetails(m.client, m.orderDetail.ID), true
		}
	case "/":
		if m.currentView == "recommend" && !m.textInput.Focused() {
			m = m.focusInput("diet=vegetarian,budget=10")
			return m, nil, true
		}
	case "ctrl+p":
		if m.currentView == "create_order" {
			if len(m.draft.Items) == 0 {
				m.error = "Add at least one item first"
				return m, nil, true
			}
			m.loading = true
			return m, createOrder(m.client, m.draft), true
		}
	case "tab":
		if m.currentView == "chat" && len(m.suggestions) > 0 {
			m.textInput.SetValue(m.suggestions[0])
			m.suggestions = append(m.suggestions[1:], m.suggestions[0])
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m Model) handleEnter() (Model, tea.Cmd, bool) {
	m.error = ""
	switch m.currentView {
	case "main":
		selected, ok := m.mainMenu.SelectedItem().(item)
		if !ok {
			return m, nil, true
		}
		m.loading = true
		switch selected.title {
		case "Exit":
			return m, tea.Quit, true
		case "Restaurants":
			m.currentView = "restaurants"
			return m, fetchRestaurants(m.client), true
		case "Orders":
			m.currentView = "orders"
			return m, fetchOrders(m.client), true
		case "Recommendations":
			m.currentView = "recommend"
			m.loading = false
			m = m.focusInput("diet=vegetarian,budget=10")
			return m, nil, true
		case "Chat":
			m.currentView = "chat"
			m.loading = false
			m = m.focusInput("Ask about food, recipes or restaurants...")
			return m, nil, true
		case "Health":
			m.currentView = "health"
			return m, fetchHealth(m.client), true
		}
	case "restaurants":
		row := m.restaurantTable.SelectedRow()
		if len(row) == 0 {
			return m, nil, true
		}
		m.currentView = "menu"
		m.loading = true
		return m, fetchMenu(m.client, row[0]), true
	case "orders":
		if selected, ok := m.orderList.SelectedItem().(orderItem); ok {
			m.currentView = "order_detail"
			m.loading = true
			return m, fetchOrderDetails(m.client, selected.id), true
		}
	case "order_detail":
		m.currentView = "orders"
		return m, fetchOrders(m.client), true
	case "create_order":
		li, restaurant, err := parseLineItem(m.textInput.Value())
		if err != nil {
			m.error = err.Error()
			return m, nil, true
		}
		m.draft.Items = append(m.draft.Items, li)
		if restaurant != "" {
			m.draft.Restaurant = restaurant
		}
		m.textInput.SetValue("")
		return m, nil, true
	case "recommend":
		if !m.textInput.Focused() {
			return m, nil, false
		}
		prefs := parsePreferences(m.textInput.Value())
		m.textInput.Blur()
		m.loading = true
		return m, fetchRecommendations(m.client, prefs), true
	case "chat":
		message := strings.TrimSpace(m.textInput.Value())
		if message == "" {
			return m, nil, true
		}
		history := append([]ChatTurn(nil), m.chat...)
		m.chat = append(m.chat, ChatTurn{Type: "user", Content: message})
		m.suggestions = nil
		m.textInput.SetValue("")
		m.loading = true
		return m, sendChat(m.client, message, history), true
	}
	return m, nil, false
}

// View renders the UI
func (m Model) View() string {
	var body string
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "restaurants":
		body = titleStyle.Render("Restaurants") + "\n\n" + m.restaurantTable.View() +
			hintStyle.Render("\n'enter' to view the menu, 'esc' to go back")
	case "menu":
		body = titleStyle.Render("Menu") + "\n\n" + m.menuTable.View() +
			hintStyle.Render("\n'esc' to go back to restaurants")
	case "orders":
		body = titleStyle.Render("Orders") + "\n\n" + m.orderList.View() +
			hintStyle.Render("\n'n' new order, 'enter' details, 'r' refresh, 'esc' back")
	case "order_detail":
		body = orderDetailView(m.orderDetail)
	case "create_order":
		body = titleStyle.Render("New Order") + "\n\n" + draftView(m.draft) + "\n" + m.textInput.View() +
			hintStyle.Render("\nFormat: <item>,<price>,<quantity>[,<restaurant id>]\n'enter' adds the item, 'ctrl+p' places the order, 'esc' cancels")
	case "recommend":
		body = titleStyle.Render("Recommendations") + "\n\n" + m.textInput.View() + "\n\n" + m.recommendTable.View() +
			hintStyle.Render("\nPreferences as key=value pairs. 'enter' to search, '/' to edit, 'esc' back")
	case "chat":
		body = titleStyle.Render("Chat") + "\n\n" + chatView(m.chat, m.suggestions) + "\n" + m.textInput.View() +
			hintStyle.Render("\n'enter' to send, 'tab' cycles suggestions, 'esc' back")
	case "health":
		body = healthView(m.health)
	default:
		body = "Loading..."
	}

	if m.loading {
		body += "\n" + m.spinner.View() + " Loading..."
	}
	if m.status != "" {
		body += "\n" + successStyle.Render(m.status)
	}
	if m.error != "" {
		body += "\n" + errorStyle.Render(m.error)
	}
	return docStyle.Render(body)
}

// Custom message types for the tea.Model
type healthMsg struct{ health *Health }

type restaurantsMsg struct{ restaurants []Restaurant }

type menuMsg struct{ items []MenuItem }

type ordersMsg struct{ orders []Order }

type orderDetailMsg struct{ order Order }

type orderPlacedMsg struct{ order Order }

type recommendationsMsg struct{ recommendations []Recommendation }

type chatReplyMsg struct{ reply ChatReply }

type errorMsg struct{ err string }

// orderItem represents an order in the list
type orderItem struct {
	id     string
	title  string
	desc   string
	status string
}

func (i orderItem) Title() string       { return i.title }
func (i orderItem) Description() string { return i.desc }
func (i orderItem) FilterValue() string { return i.title }

func fetchHealth(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		health, err := client.CheckHealth()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Health check failed: %v", err)}
		}
		return healthMsg{health: health}
	}
}

func fetchRestaurants(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		restaurants, err := client.GetRestaurants()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching restaurants: %v", err)}
		}
		return restaurantsMsg{restaurants: restaurants}
	}
}

func fetchMenu(client *ApiClient, restaurantID string) tea.Cmd {
	return func() tea.Msg {
		items, err := client.GetMenu(restaurantID)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching menu: %v", err)}
		}
		return menuMsg{items: items}
	}
}

// fetchOrders retrieves orders from the API
func fetchOrders(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.GetOrders()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching orders: %v", err)}
		}
		return ordersMsg{orders: orders}
	}
}

// fetchOrderDetails retrieves details for a specific order
func fetchOrderDetails(client *ApiClient, id string) tea.Cmd {
	return func() tea.Msg {
		order, err := client.GetOrder(id)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching order details: %v", err)}
		}
		return orderDetailMsg{order: *order}
	}
}

// createOrder sends a new order to the API
func createOrder(client *ApiClient, order Order) tea.Cmd {
	return func() tea.Msg {
		created, err := client.CreateOrder(&order)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error creating order: %v", err)}
		}
		return orderPlacedMsg{order: *created}
	}
}

func fetchRecommendations(client *ApiClient, prefs map[string]interface{}) tea.Cmd {
	return func() tea.Msg {
		recs, err := client.Recommend(prefs)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching recommendations: %v", err)}
		}
		return recommendationsMsg{recommendations: recs}
	}
}

func sendChat(client *ApiClient, message string, history []ChatTurn) tea.Cmd {
	return func() tea.Msg {
		reply, err := client.Chat(message, history)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Chat failed: %v", err)}
		}
		return chatReplyMsg{reply: *reply}
	}
}

// parseLineItem reads "<item>,<price>,<quantity>[,<restaurant id>]"
func parseLineItem(input string) (LineItem, string, error) {
	parts := strings.Split(input, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return LineItem{}, "", errors.New("expected <item>,<price>,<quantity>[,<restaurant id>]")
	}

	name := strings.TrimSpace(parts[0])
	if name == "" {
		return LineItem{}, "", errors.New("item name is required")
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || price < 0 {
		return LineItem{}, "", fmt.Errorf("invalid price %q", strings.TrimSpace(parts[1]))
	}
	qty, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil || qty < 1 {
		return LineItem{}, "", fmt.Errorf("invalid quantity %q", strings.TrimSpace(parts[2]))
	}

	var restaurant string
	if len(parts) == 4 {
		restaurant = strings.TrimSpace(parts[3])
	}
	return LineItem{Name: name, Price: price, Quantity: qty}, restaurant, nil
}

// parsePreferences reads "key=value" pairs separated by commas. Numeric
// values are sent as numbers.
func parsePreferences(input string) map[string]interface{} {
	prefs := make(map[string]interface{})
	for _, pair := range strings.Split(input, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			prefs[key] = n
			continue
		}
		prefs[key] = value
	}
	return prefs
}

func restaurantRows(restaurants []Restaurant) []table.Row {
	rows := make([]table.Row, 0, len(restaurants))
	for _, r := range restaurants {
		rows = append(rows, table.Row{
			r.ID, r.Name, r.Cuisine,
			fmt.Sprintf("%.1f", r.Rating),
			r.DeliveryTime,
			fmt.Sprintf("$%.2f", r.DeliveryFee),
		})
	}
	return rows
}

func menuRows(items []MenuItem) []table.Row {
	rows := make([]table.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, table.Row{
			it.Name, it.Category,
			fmt.Sprintf("$%.2f", it.Price),
			strings.Join(it.Ingredients, ", "),
		})
	}
	return rows
}

func recommendationRows(recs []Recommendation) []table.Row {
	rows := make([]table.Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, table.Row{r.Name, r.Restaurant, fmt.Sprintf("$%.2f", r.Price), r.MatchReason})
	}
	return rows
}

// convertOrdersToItems converts API orders to list items
func convertOrdersToItems(orders []Order) []list.Item {
	items := make([]list.Item, len(orders))
	for i, order := range orders {
		items[i] = orderItem{
			id:     order.ID,
			title:  fmt.Sprintf("%s (%s)", order.ID, order.Restaurant),
			desc:   fmt.Sprintf("%d items - $%.2f - Status: %s", len(order.Items), order.Total, order.Status),
			status: order.Status,
		}
	}
	return items
}

// orderDetailView creates a detailed view of an order
func orderDetailView(order Order) string {
	view := titleStyle.Render(fmt.Sprintf("Order %s", order.ID)) + "\n\n"
	view += fmt.Sprintf("Restaurant: %s\n", order.Restaurant)
	view += fmt.Sprintf("Status: %s\n", infoStyle.Render(order.Status))
	view += fmt.Sprintf("Placed: %s\n", order.OrderTime.Local().Format(time.RFC1123))
	view += fmt.Sprintf("Estimated delivery: %s\n", order.EstimatedDelivery.Local().Format(time.Kitchen))
	view += fmt.Sprintf("Total: $%.2f\n", order.Total)

	view += "\nItems:\n"
	for i, it := range order.Items {
		view += fmt.Sprintf("%d. %s (x%d) $%.2f\n", i+1, it.Name, it.Quantity, it.Price)
	}

	view += hintStyle.Render("\n'r' to refresh, 'enter' to go back to the list")
	return view
}

// draftView shows the order being built
func draftView(order Order) string {
	view := fmt.Sprintf("Restaurant: %s\n\nItems:\n", valueOr(order.Restaurant, "(not set)"))
	if len(order.Items) == 0 {
		return view + "No items added yet\n"
	}
	for i, it := range order.Items {
		view += fmt.Sprintf("%d. %s (x%d) $%.2f\n", i+1, it.Name, it.Quantity, it.Price)
	}
	return view
}

func chatView(turns []ChatTurn, suggestions []string) string {
	if len(turns) == 0 {
		return hintStyle.Render("Say hi! Ask for a recipe, a quick dinner or something healthy.") + "\n"
	}

	var sb strings.Builder
	for _, turn := range turns {
		if turn.Type == "user" {
			sb.WriteString(userStyle.Render("You: "))
		} else {
			sb.WriteString(assistantStyle.Render("Assistant: "))
		}
		sb.WriteString(turn.Content)
		sb.WriteString("\n\n")
	}
	if len(suggestions) > 0 {
		sb.WriteString(hintStyle.Render("Try: " + strings.Join(suggestions, " | ")))
		sb.WriteString("\n")
	}
	return sb.String()
}

func healthView(h *Health) string {
	view := titleStyle.Render("Service Health") + "\n\n"
	if h == nil {
		return view + "No data yet"
	}
	view += fmt.Sprintf("Status: %s\n", successStyle.Render(h.Status))
	view += fmt.Sprintf("Provider: %s\n", h.Provider)
	view += fmt.Sprintf("Remote inference configured: %t\n", h.RemoteConfigured)
	view += fmt.Sprintf("Uptime: %s\n", (time.Duration(h.UptimeSeconds) * time.Second).String())
	view += fmt.Sprintf("Checked at: %s\n", h.Timestamp)
	return view
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
