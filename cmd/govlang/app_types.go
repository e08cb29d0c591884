package main

import (
	"github.com/gosuda/govlang/ast"
)

type stepperConfig struct {
	prog    *ast.Program
	level   int
	loadEnv string
	dumpEnv string
}

type interpStartedMsg struct {
	events <-chan interpEvent
}

// interpEvent is one message from the interpreter goroutine to the UI.
type interpEvent interface{ isInterpEvent() }

type outputEvent struct {
	line string
}

func (outputEvent) isInterpEvent() {}

type diagEvent struct {
	line string
}

func (diagEvent) isInterpEvent() {}

// stepEvent pauses the run: the interpreter blocks until resume receives.
type stepEvent struct {
	index  int
	desc   string
	vars   []string
	resume chan struct{}
}

func (stepEvent) isInterpEvent() {}

// promptEvent asks the UI for one READ line; the interpreter blocks on resp.
type promptEvent struct {
	resp chan string
}

func (promptEvent) isInterpEvent() {}

type doneEvent struct {
	err error
}

func (doneEvent) isInterpEvent() {}
