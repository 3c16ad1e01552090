/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
)

// Participant-visible failures, reported to the offending client only.
var (
	errRoomNotFound     = errors.New("room not found")
	errRoomFull         = errors.New("room already has 2 players")
	errAlreadyStarted   = errors.New("game already started")
	errGameNotStarted   = errors.New("game not started")
	errGameNotFound     = errors.New("game not found")
	errQuestionNotFound = errors.New("question not found")
	errAlreadyAnswered  = errors.New("already answered")
)

// Registry and account failures, surfaced over HTTP.
var (
	errRoomExists         = errors.New("room code already in use")
	errStatusRegression   = errors.New("room status cannot move backward")
	errUserExists         = errors.New("user already exists")
	errInvalidCredentials = errors.New("incorrect credentials")
)

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
