package ui

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"
)

func formField(labelText, name, inputType, placeholder string) g.Node {
	return Div(
		Label(Class("block font-bold mb-1"), For(name), g.Text(labelText)),
		Input(
			Type(inputType),
			Name(name),
			ID(name),
			Placeholder(placeholder),
			Class("w-full border rounded px-3 py-2"),
		),
	)
}

// LoginPage renders the login form.
func LoginPage(userID int, userName, currentPath string) g.Node {
	return Page("Login", userID, userName, currentPath,
		contentContainer(
			pageHeader("로그인"),
			Form(
				Class("space-y-4"),
				hx.Post("/api/login"),
				hx.Target("#result"),
				hx.Swap("innerHTML"),
				formField("이메일", "email", "email", "you@example.com"),
				formField("비밀번호", "password", "password", ""),
				styledButton("로그인", buttonPrimary, Type("submit")),
				resultContainer(),
			),
		),
	)
}

// RegisterPage renders the registration form.
func RegisterPage(userID int, userName, currentPath string) g.Node {
	return Page("Register", userID, userName, currentPath,
		contentContainer(
			pageHeader("회원가입"),
			Form(
				Class("space-y-4"),
				hx.Post("/api/register"),
				hx.Target("#result"),
				hx.Swap("innerHTML"),
				formField("이름", "name", "text", ""),
				formField("이메일", "email", "email", "you@example.com"),
				formField("비밀번호", "password", "password", "8자 이상"),
				formField("비밀번호 확인", "password2", "password", ""),
				Label(
					Class("flex items-center gap-2 text-sm"),
					Input(Type("checkbox"), Name("terms"), Value("accepted")),
					g.Text("이용약관과 개인정보처리방침에 동의합니다."),
					A(Href("/terms"), Class("text-blue-500 hover:underline"), g.Text("약관 보기")),
				),
				styledButton("가입하기", buttonPrimary, Type("submit")),
				resultContainer(),
			),
		),
	)
}
