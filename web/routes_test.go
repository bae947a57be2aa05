// Web request handler tests
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
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"go-othello/conf"
	"go-othello/registry"
)

func TestStatusReportsRegistrySnapshot(t *testing.T) {
	reg := registry.New()
	reg.CreateUnready(1, true)
	reg.CreateUnready(2, false)

	s := &web{conf: &conf.Conf{
		Log:      log.New(io.Discard, "", 0),
		Registry: reg,
	}}

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	s.status(rr, req)

	if rr.Code != 200 {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "2 unready") {
		t.Errorf("expected the page to report 2 unready games, got: %s", body)
	}
	if !strings.Contains(body, "1 game(s) waiting") {
		t.Errorf("expected the page to report 1 queued game, got: %s", body)
	}
}
