// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package dispute

import (
	"time"

	"github.com/shopspring/decimal"
)

// terminalStatuses are excluded from the overdue count: a resolved or closed
// case past its due date is no longer actionable backlog.
var terminalStatuses = map[CaseStatus]bool{
	StatusResolved: true,
	StatusClosed:   true,
}

// ComputeMetrics derives the metrics snapshot from the current case
// collection, evaluating overdue against the wall clock.
func ComputeMetrics(cases []DisputeCase) MetricsSnapshot {
	return ComputeMetricsAt(cases, time.Now())
}

// ComputeMetricsAt derives the metrics snapshot with an explicit reference
// time. Pure and order-independent: any permutation of cases yields an
// identical snapshot.
func ComputeMetricsAt(cases []DisputeCase, now time.Time) MetricsSnapshot {
	m := MetricsSnapshot{
		StatusCounts:        make(map[CaseStatus]int, len(KnownStatuses)),
		TotalDisputedAmount: decimal.Zero,
		TotalCases:          len(cases),
	}
	for _, s := range KnownStatuses {
		m.StatusCounts[s] = 0
	}

	for _, c := range cases {
		// Unknown statuses are not counted, but the case still contributes
		// to every other metric.
		if _, known := m.StatusCounts[c.Status]; known {
			m.StatusCounts[c.Status]++
		}

		if c.RequiresFollowUp {
			m.RequiresFollowUp++
		}

		if due, ok := ParseEditTime(c.DueAt); ok && due.Before(now) && !terminalStatuses[c.Status] {
			m.Overdue++
		}

		for _, t := range c.Tasks {
			if t.Status != TaskCompleted {
				m.ActiveTasks++
				break
			}
		}

		if c.AmountDisputed.Valid {
			m.TotalDisputedAmount = m.TotalDisputedAmount.Add(c.AmountDisputed.Decimal)
		}
	}

	return m
}
