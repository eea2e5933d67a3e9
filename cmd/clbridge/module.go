package main

import (
	"github.com/reusee/clbridge/sessions"
	"github.com/reusee/clbridge/starlarks"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Sessions  sessions.Module
	Starlarks starlarks.Module
}
