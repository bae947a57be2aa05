// Web interface generator
//
// Copyright (c) 2021, 2022, 2023  Philip Kaludercic
//
// This file is part of go-othello.
//
// go-othello is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-othello is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-othello. If not, see
// <http://www.gnu.org/licenses/>

package web

import (
	"html/template"
	"net/http"

	"go-othello/conf"
)

// statusTmpl renders the operational status page: how many games are
// Unready, Ready or Completed, and how many are currently waiting in
// the matchmaking queue. There is no game history or user database to
// browse; the core keeps no record beyond the live registry.
var statusTmpl = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html>
<head><title>go-othello</title></head>
<body>
<h1>go-othello</h1>
<p>{{.Unready}} unready, {{.Ready}} in progress, {{.Completed}} completed.</p>
<p>{{.Queued}} game(s) waiting for an opponent.</p>
</body>
</html>
`))

type web struct {
	conf *conf.Conf
	mux  *http.ServeMux
}
