package ui

import (
	"strings"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

func userInitial(userName string) string {
	if userName == "" {
		return "?"
	}
	return strings.ToUpper(string([]rune(userName)[0]))
}

func indicator() g.Node {
	return Div(
		ID("indicator"),
		Class("htmx-indicator flex items-center gap-2 text-blue-600"),
		Div(
			Class("w-4 h-4 border-2 border-blue-600 border-t-transparent rounded-full animate-spin"),
		),
		g.Text("Loading..."),
	)
}

func navLoggedIn(userName string) g.Node {
	return Div(
		Class("flex items-center space-x-4"),
		A(Href("/favorites"), Class("text-blue-500 hover:underline"), g.Text("Favorites")),
		A(Href("/reviews"), Class("text-blue-500 hover:underline"), g.Text("My Reviews")),
		Span(
			Class("bg-red-500 text-white rounded-full w-8 h-8 flex items-center justify-center font-semibold text-sm"),
			g.Text(userInitial(userName)),
		),
		A(
			Href("#"),
			Class("text-blue-500 hover:underline"),
			hx.Post("/logout"),
			hx.Target("body"),
			hx.Swap("outerHTML"),
			g.Text("Logout"),
		),
	)
}

func loginNode() g.Node {
	return A(Href("/login"), Class("text-blue-500 hover:underline"), g.Text("Login"))
}

func registerNode() g.Node {
	return A(Href("/register"), Class("text-blue-500 hover:underline"), g.Text("Register"))
}

func navLoggedOut(currentPath string) g.Node {
	switch currentPath {
	case "/login":
		return registerNode()
	case "/register":
		return loginNode()
	default:
		return Div(
			Class("flex items-center space-x-4"),
			loginNode(),
			registerNode(),
		)
	}
}

func navigation(userID int, userName, currentPath string) g.Node {
	return Nav(
		Class("mb-8 border-b pb-4 flex items-center justify-between w-full"),
		A(Href("/"), Class("text-xl font-bold"), g.Text("Refill Spot")),
		indicator(),
		g.Iff(userID != 0, func() g.Node { return navLoggedIn(userName) }),
		g.Iff(userID == 0, func() g.Node { return navLoggedOut(currentPath) }),
	)
}
