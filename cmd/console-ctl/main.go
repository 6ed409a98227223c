// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// console-ctl is a command-line tool for working a dispute workspace against
// a running marketplace API (or the local console-stub).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fixnado/console/internal/config"
	"github.com/fixnado/console/internal/dispute"
	"github.com/fixnado/console/internal/workspace"
	"github.com/fixnado/console/pkg/client"
)

var (
	version    = "0.9"
	apiURL     = "http://localhost:4780"
	persona    = "customer"
	jsonOutput = false
)

func main() {
	loadConfigFile()
	if env := os.Getenv("CONSOLE_API"); env != "" {
		apiURL = strings.TrimSuffix(env, "/")
	}
	if env := os.Getenv("CONSOLE_PERSONA"); env != "" {
		persona = env
	}

	// Parse global flags and filter them out
	var filteredArgs []string
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-json":
			jsonOutput = true
		case "-persona":
			if i+1 < len(args) {
				i++
				persona = args[i]
			}
		default:
			filteredArgs = append(filteredArgs, args[i])
		}
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	cmd := filteredArgs[0]
	cmdArgs := filteredArgs[1:]

	var err error
	switch cmd {
	case "list":
		err = cmdList(cmdArgs)
	case "metrics":
		err = cmdMetrics(cmdArgs)
	case "case":
		err = cmdCase(cmdArgs)
	case "task":
		err = cmdSub(workspace.KindTask, cmdArgs)
	case "note":
		err = cmdSub(workspace.KindNote, cmdArgs)
	case "evidence":
		err = cmdSub(workspace.KindEvidence, cmdArgs)
	case "version", "-v", "--version":
		fmt.Printf("console-ctl %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfigFile applies console.hjson settings when the file exists.
func loadConfigFile() {
	loader := config.NewLoader()
	path, err := loader.FindConfig()
	if err != nil {
		return
	}
	cfg, err := loader.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	apiURL = strings.TrimSuffix(cfg.API.BaseURL, "/")
	persona = cfg.API.Persona
}

// newWorkspace builds a loaded workspace for the selected persona.
func newWorkspace(ctx context.Context) (*workspace.Workspace, error) {
	c := client.New(apiURL)

	var gw workspace.Gateway
	switch persona {
	case "customer":
		gw = c.Customer
	case "provider":
		gw = c.Provider
	default:
		return nil, fmt.Errorf("unknown persona %q (want customer or provider)", persona)
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	w := workspace.New(gw, workspace.WithLogger(logger))
	if err := w.Load(ctx); err != nil {
		return nil, fmt.Errorf("load workspace: %w", err)
	}
	return w, nil
}

func cmdList(args []string) error {
	w, err := newWorkspace(context.Background())
	if err != nil {
		return err
	}
	snap := w.Snapshot()

	if jsonOutput {
		return printJSON(snap.Cases)
	}

	if len(snap.Cases) == 0 {
		fmt.Println("No dispute cases.")
		return nil
	}
	fmt.Printf("%-38s %-18s %-10s %-12s %s\n", "ID", "STATUS", "SEVERITY", "AMOUNT", "TITLE")
	for _, c := range snap.Cases {
		amount := "-"
		if c.AmountDisputed.Valid {
			amount = c.AmountDisputed.Decimal.String() + " " + c.Currency
		}
		fmt.Printf("%-38s %-18s %-10s %-12s %s\n", c.ID, c.Status, c.Severity, amount, c.Title)
	}
	return nil
}

func cmdMetrics(args []string) error {
	w, err := newWorkspace(context.Background())
	if err != nil {
		return err
	}
	m := w.Metrics()

	if jsonOutput {
		return printJSON(m)
	}

	fmt.Printf("Total cases:        %d\n", m.TotalCases)
	fmt.Printf("Overdue:            %d\n", m.Overdue)
	fmt.Printf("Needs follow-up:    %d\n", m.RequiresFollowUp)
	fmt.Printf("With open tasks:    %d\n", m.ActiveTasks)
	fmt.Printf("Amount in dispute:  %s\n", m.TotalDisputedAmount.String())
	fmt.Println("By status:")
	for _, s := range dispute.KnownStatuses {
		fmt.Printf("  %-18s %d\n", s, m.StatusCounts[s])
	}
	return nil
}

func cmdCase(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: console-ctl case <create|update|delete> ...")
	}
	ctx := context.Background()
	w, err := newWorkspace(ctx)
	if err != nil {
		return err
	}

	switch args[0] {
	case "create", "update":
		form, err := caseFormFromArgs(w, args)
		if err != nil {
			return err
		}
		if err := w.OpenCaseEditor(form.ID); err != nil {
			return err
		}
		if err := w.SubmitCase(ctx, form); err != nil {
			return err
		}
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: console-ctl case delete <id>")
		}
		if err := w.DeleteCase(ctx, args[1]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown case subcommand: %s", args[0])
	}

	return reportOutcome(w, workspace.KindCase)
}

// cmdSub handles the shared task/note/evidence verb shape:
//
//	console-ctl task add <case-id> key=value ...
//	console-ctl task update <case-id> <id> key=value ...
//	console-ctl task delete <case-id> <id>
func cmdSub(kind workspace.Kind, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: console-ctl %s <add|update|delete> <case-id> ...", kind)
	}
	ctx := context.Background()
	w, err := newWorkspace(ctx)
	if err != nil {
		return err
	}

	verb, caseID := args[0], args[1]
	switch verb {
	case "add":
		err = submitSub(ctx, w, kind, caseID, "", fieldArgs(args[2:]))
	case "update":
		if len(args) < 3 {
			return fmt.Errorf("usage: console-ctl %s update <case-id> <id> key=value ...", kind)
		}
		err = submitSub(ctx, w, kind, caseID, args[2], fieldArgs(args[3:]))
	case "delete":
		if len(args) < 3 {
			return fmt.Errorf("usage: console-ctl %s delete <case-id> <id>", kind)
		}
		switch kind {
		case workspace.KindTask:
			err = w.DeleteTask(ctx, caseID, args[2])
		case workspace.KindNote:
			err = w.DeleteNote(ctx, caseID, args[2])
		default:
			err = w.DeleteEvidence(ctx, caseID, args[2])
		}
	default:
		return fmt.Errorf("unknown %s subcommand: %s", kind, verb)
	}
	if err != nil {
		return err
	}

	return reportOutcome(w, kind)
}

func submitSub(ctx context.Context, w *workspace.Workspace, kind workspace.Kind, caseID, id string, fields map[string]string) error {
	switch kind {
	case workspace.KindTask:
		if err := w.OpenTaskEditor(caseID, id); err != nil {
			return err
		}
		form := w.Snapshot().TaskEditor.Form
		applyTaskFields(&form, fields)
		return w.SubmitTask(ctx, form)
	case workspace.KindNote:
		if err := w.OpenNoteEditor(caseID, id); err != nil {
			return err
		}
		form := w.Snapshot().NoteEditor.Form
		applyNoteFields(&form, fields)
		return w.SubmitNote(ctx, form)
	default:
		if err := w.OpenEvidenceEditor(caseID, id); err != nil {
			return err
		}
		form := w.Snapshot().EvidenceEditor.Form
		applyEvidenceFields(&form, fields)
		return w.SubmitEvidence(ctx, form)
	}
}

// caseFormFromArgs builds a case form from "key=value" arguments, prefilled
// from the existing case for updates.
func caseFormFromArgs(w *workspace.Workspace, args []string) (workspace.CaseForm, error) {
	var form workspace.CaseForm
	fields := args[1:]

	if args[0] == "update" {
		if len(args) < 2 {
			return form, fmt.Errorf("usage: console-ctl case update <id> key=value ...")
		}
		c, ok := w.Case(args[1])
		if !ok {
			return form, fmt.Errorf("case not found: %s", args[1])
		}
		form = workspace.CaseFormFrom(c)
		fields = args[2:]
	}

	for key, value := range fieldArgs(fields) {
		switch key {
		case "title":
			form.Title = value
		case "status":
			form.Status = value
		case "severity":
			form.Severity = value
		case "category":
			form.Category = value
		case "amount":
			form.AmountDisputed = value
		case "currency":
			form.Currency = value
		case "due":
			form.DueAt = value
		case "summary":
			form.Summary = value
		case "next-step":
			form.NextStep = value
		case "owner":
			form.AssignedOwner = value
		case "team":
			form.AssignedTeam = value
		case "follow-up":
			form.RequiresFollowUp = value == "true"
		default:
			return form, fmt.Errorf("unknown field: %s", key)
		}
	}
	return form, nil
}

func applyTaskFields(form *workspace.TaskForm, fields map[string]string) {
	for key, value := range fields {
		switch key {
		case "label":
			form.Label = value
		case "status":
			form.Status = value
		case "due":
			form.DueAt = value
		case "assignee":
			form.AssignedTo = value
		case "instructions":
			form.Instructions = value
		}
	}
}

func applyNoteFields(form *workspace.NoteForm, fields map[string]string) {
	for key, value := range fields {
		switch key {
		case "type":
			form.NoteType = value
		case "visibility":
			form.Visibility = value
		case "body":
			form.Body = value
		case "next-steps":
			form.NextSteps = value
		case "pinned":
			form.Pinned = value == "true"
		}
	}
}

func applyEvidenceFields(form *workspace.EvidenceForm, fields map[string]string) {
	for key, value := range fields {
		switch key {
		case "label":
			form.Label = value
		case "url":
			form.FileURL = value
		case "type":
			form.FileType = value
		case "thumbnail":
			form.ThumbnailURL = value
		case "notes":
			form.Notes = value
		}
	}
}

// fieldArgs parses trailing "key=value" arguments.
func fieldArgs(args []string) map[string]string {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok {
			fields[k] = v
		}
	}
	return fields
}

// reportOutcome prints the banner the view layer would show.
func reportOutcome(w *workspace.Workspace, kind workspace.Kind) error {
	snap := w.Snapshot()
	if jsonOutput {
		return printJSON(map[string]any{
			"banner":  snap.Banners[kind],
			"metrics": snap.Metrics,
		})
	}
	if banner, ok := snap.Banners[kind]; ok {
		fmt.Println(banner.Message)
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printUsage() {
	fmt.Println(`console-ctl - Work a dispute workspace from the command line

Usage:
  console-ctl [-json] [-persona customer|provider] <command> [arguments]

Environment:
  CONSOLE_API       Base URL of the dispute API (default: http://localhost:4780)
  CONSOLE_PERSONA   Acting persona (default: customer)

Commands:
  list                                     List dispute cases
  metrics                                  Show the workspace metrics snapshot
  case create key=value ...                Open a new dispute case
  case update <id> key=value ...           Update a dispute case
  case delete <id>                         Delete a dispute case
  task add <case-id> key=value ...         Add a task to a case
  task update <case-id> <id> key=value ... Update a task
  task delete <case-id> <id>               Delete a task
  note ...                                 Same verbs for notes
  evidence ...                             Same verbs for evidence
  version                                  Print version`)
}
