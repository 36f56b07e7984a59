// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package exec provides the execution handles algorithms are dispatched
// through and the team runtime.
//
// Example:
//
//	space := cpu.New()
//	policy := exec.TeamPolicy{LeagueSize: rows, TeamSize: 4, ScratchSize: 4096}
//	err := exec.ParallelTeams("rows", space, policy, func(m *exec.TeamMember) {
//	    row := matrix.Row(m.LeagueRank())
//	    _, _ = algorithms.CopyBackward(m, row.Begin(), row.End().Sub(1), row.End())
//	})
package exec

import "github.com/born-ml/stdalgo/internal/exec"

// Sentinel errors.
var (
	ErrSpaceClosed   = exec.ErrSpaceClosed
	ErrInvalidPolicy = exec.ErrInvalidPolicy
)

// Device represents the compute device an execution space runs on.
type Device = exec.Device

// Supported compute devices.
const (
	CPU    = exec.CPU
	WebGPU = exec.WebGPU
)

// Handle is implemented by execution spaces and team members.
type Handle = exec.Handle

// Space is a device-wide execution space.
type Space = exec.Space

// Work is one labeled launch.
type Work = exec.Work

// TeamPolicy describes a league of teams.
type TeamPolicy = exec.TeamPolicy

// TeamMember is the handle each goroutine of a team receives.
type TeamMember = exec.TeamMember

// ParallelFor runs body(i) for every i in [0, n) on s under label.
func ParallelFor(label string, s Space, n int, body func(i int)) error {
	return exec.ParallelFor(label, s, n, body)
}

// ParallelTeams runs body once per member of every team of the league.
func ParallelTeams(label string, s Space, p TeamPolicy, body func(m *TeamMember)) error {
	return exec.ParallelTeams(label, s, p, body)
}

// Fence waits for s to finish all outstanding work under label.
func Fence(label string, s Space) error {
	return exec.Fence(label, s)
}

// Gate counts the launches in flight on a space. Custom spaces embed one
// and pass it to LaunchWith so that Fence and Close can wait for them.
type Gate = exec.Gate

// RangeFunc runs a body over contiguous chunks of [0, n).
type RangeFunc = exec.RangeFunc

// LaunchWith implements Handle.Launch for a custom space.
func LaunchWith(device string, g *Gate, run RangeFunc, label string, w Work) error {
	return exec.LaunchWith(device, g, run, label, w)
}
