// ShabalCore: Proof-of-Capacity Plotting & Mining Engines
// Copyright (C) 2026  Guillermo Perry
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command poc-monitor is a terminal dashboard that scans an existing plot
// file scoop by scoop under one generation signature: a progress bar over
// the scoop range, a scrolling log of scoops scanned, host CPU/memory
// panels, and a key to copy the best deadline found so far to the
// clipboard. It does not plot.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"shabalcore/internal/plotfile"
	"shabalcore/pkg/poc"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	bestStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("120"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const maxLogLines = 8

func main() {
	path := flag.String("plot", "", "plot file to scan (required)")
	gensigHex := flag.String("gensig", "", "64-character hex generation signature (required)")
	flag.Parse()

	if *path == "" || *gensigHex == "" {
		fmt.Fprintln(os.Stderr, "poc-monitor: -plot and -gensig are required")
		os.Exit(2)
	}

	raw, err := hex.DecodeString(*gensigHex)
	if err != nil || len(raw) != poc.GensigSize {
		log.Fatalf("poc-monitor: gensig must be a %d-byte hex string", poc.GensigSize)
	}
	var gensig [poc.GensigSize]byte
	copy(gensig[:], raw)

	header, body, err := plotfile.Read(*path)
	if err != nil {
		log.Fatalf("poc-monitor: %v", err)
	}

	m := newModel(*path, header, plotfile.Caches(body), gensig)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatalf("poc-monitor: %v", err)
	}
}

// scoopScannedMsg reports the outcome of scanning one scoop across every
// nonce in the plot file.
type scoopScannedMsg struct {
	scoop  int
	result poc.BestResult
}

type hostStatsMsg struct {
	cpuPercent float64
	memPercent float64
}

type tickMsg time.Time

type model struct {
	path   string
	header plotfile.Header
	caches []poc.Cache
	gensig [poc.GensigSize]byte

	scoop    int
	best     poc.BestResult
	log      []string
	spinner  spinner.Model
	bar      progress.Model
	cpuPct   float64
	memPct   float64
	copied   bool
	quitting bool
}

func newModel(path string, header plotfile.Header, caches []poc.Cache, gensig [poc.GensigSize]byte) model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	b := progress.New(progress.WithDefaultGradient())

	return model{
		path:    path,
		header:  header,
		caches:  caches,
		gensig:  gensig,
		spinner: s,
		bar:     b,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, scanNextScoop(m.caches, m.scoop, m.gensig), pollHostStats())
}

func scanNextScoop(caches []poc.Cache, scoop int, gensig [poc.GensigSize]byte) tea.Cmd {
	return func() tea.Msg {
		result := poc.FindBestDeadlineCaches(caches, scoop, gensig)
		return scoopScannedMsg{scoop: scoop, result: result}
	}
}

func pollHostStats() tea.Cmd {
	return func() tea.Msg {
		var cpuPct float64
		if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
			cpuPct = percents[0]
		}
		var memPct float64
		if vm, err := mem.VirtualMemory(); err == nil {
			memPct = vm.UsedPercent
		}
		return hostStatsMsg{cpuPercent: cpuPct, memPercent: memPct}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "c":
			if m.best.Found() {
				_ = clipboard.WriteAll(fmt.Sprintf("%d", uint64(m.best.Deadline)))
				m.copied = true
			}
			return m, nil
		}

	case scoopScannedMsg:
		if msg.result.Found() && (!m.best.Found() || msg.result.Deadline < m.best.Deadline) {
			m.best = msg.result
		}
		m.log = appendLog(m.log, fmt.Sprintf("scoop %4d: deadline=%d offset=%d",
			msg.scoop, uint64(msg.result.Deadline), msg.result.Offset))

		next := msg.scoop + 1
		if next >= poc.ScoopsPerNonce {
			m.log = appendLog(m.log, "scan complete")
			return m, nil
		}
		m.scoop = next

		cmds := []tea.Cmd{scanNextScoop(m.caches, m.scoop, m.gensig)}
		pct := float64(m.scoop) / float64(poc.ScoopsPerNonce)
		cmds = append(cmds, m.bar.SetPercent(pct))
		return m, tea.Batch(cmds...)

	case hostStatsMsg:
		m.cpuPct = msg.cpuPercent
		m.memPct = msg.memPercent
		return m, tick()

	case tickMsg:
		return m, pollHostStats()

	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		m.bar = updated.(progress.Model)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func appendLog(lines []string, line string) []string {
	lines = append(lines, line)
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
	}
	return lines
}

func (m model) View() string {
	if m.quitting {
		return "poc-monitor: stopped\n"
	}

	header := titleStyle.Render(fmt.Sprintf("poc-monitor  %s  account=%d nonces=%d",
		m.path, uint64(m.header.Account), m.header.Count))

	status := fmt.Sprintf("%s scanning scoop %d/%d", m.spinner.View(), m.scoop, poc.ScoopsPerNonce)
	progressPanel := panelStyle.Render(fmt.Sprintf("%s\n%s", status, m.bar.View()))

	best := "no deadline found yet"
	if m.best.Found() {
		best = bestStyle.Render(fmt.Sprintf("best deadline %d at nonce offset %d",
			uint64(m.best.Deadline), m.best.Offset))
	}
	if m.copied {
		best += logStyle.Render("  (copied to clipboard)")
	}
	bestPanel := panelStyle.Render(best)

	hostPanel := panelStyle.Render(fmt.Sprintf("cpu %.1f%%  mem %.1f%%", m.cpuPct, m.memPct))

	logPanel := panelStyle.Render(logStyle.Render(joinLines(m.log)))

	help := helpStyle.Render("q quit · c copy best deadline")

	return lipgloss.JoinVertical(lipgloss.Left, header, progressPanel, bestPanel, hostPanel, logPanel, help) + "\n"
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	if out == "" {
		out = "waiting for scoops..."
	}
	return out
}
