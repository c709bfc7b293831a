package web

import "html/template"

// Page rendering is deliberately minimal: just enough HTML to carry the
// login form and the dashboard shell. Styling and client scripts live
// outside this service.

const loginPage = `<!DOCTYPE html>
<html>
<head><title>Registrar - Login</title></head>
<body>
<h1>Registrar</h1>
{{if .Error}}<p class="error">Invalid Username or Password</p>{{end}}
<form method="POST" action="/login">
  <label>Username <input type="text" name="username" autocomplete="username"></label>
  <label>Password <input type="password" name="password" autocomplete="current-password"></label>
  <button type="submit">Log in</button>
</form>
</body>
</html>
`

const dashboardPage = `<!DOCTYPE html>
<html>
<head><title>Registrar - Dashboard</title></head>
<body>
<h1>Student Records</h1>
<p>Logged in as {{.Username}} - <a href="/logout">Log out</a></p>
<ul>
  <li><a href="/get_students">Students (JSON)</a></li>
  <li><a href="/get_stats">Stats (JSON)</a></li>
  <li><a href="/export_csv">Export CSV</a></li>
</ul>
</body>
</html>
`

var (
	loginTmpl     = template.Must(template.New("login").Parse(loginPage))
	dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardPage))
)
