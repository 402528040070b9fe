package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows time on the current image, total time and the review
// counts.
type SessionStats interface {
	SetImage(d time.Duration)
	SetTotal(d time.Duration)
	SetCounts(saved, rejected int)
}

type sessionStats struct {
	imageLbl  *LabelWidget
	totalLbl  *LabelWidget
	countsLbl *LabelWidget
}

// NewSessionStats creates the labels in parent at row, starting at startCol.
// If parent is nil, labels are positioned relative to the App root.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{imageLbl: Label(Width(12)), totalLbl: Label(Width(12)), countsLbl: Label(Width(22))}
	for i, l := range []*LabelWidget{s.imageLbl, s.totalLbl, s.countsLbl} {
		if parent != nil {
			Grid(l, In(parent), Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(l, Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		}
	}
	s.imageLbl.Configure(Txt("Image: 00:00"))
	s.totalLbl.Configure(Txt("Total: 00:00"))
	s.countsLbl.Configure(Txt("Saved: 0  Rejected: 0"))
	return s
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	min, sec := seconds/60, seconds%60
	return fmt.Sprintf("%02d:%02d", min, sec)
}

func (s *sessionStats) SetImage(d time.Duration) {
	if s == nil || s.imageLbl == nil {
		return
	}
	s.imageLbl.Configure(Txt("Image: " + clock(d)))
}

func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt("Total: " + clock(d)))
}

func (s *sessionStats) SetCounts(saved, rejected int) {
	if s == nil || s.countsLbl == nil {
		return
	}
	s.countsLbl.Configure(Txt(fmt.Sprintf("Saved: %d  Rejected: %d", saved, rejected)))
}
