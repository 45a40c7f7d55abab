package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"placebook/catalog"
	"placebook/tui"
)

var (
	detailTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF7A59"))
	detailLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8A8A8A")).Width(12)
)

func (a *app) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive catalog browser (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.browse(cmd.Context())
		},
	}
}

func (a *app) browse(ctx context.Context) error {
	m, err := tui.New(ctx, tui.Options{
		Loader:  a.loader(),
		Session: catalog.NewSession(a.picker()),
		Keys:    tui.NewKeyMap(a.cfg.Keys),
		Navigator: catalog.Navigator{
			TopThreshold:    a.cfg.ScrollTopThreshold,
			BottomTolerance: a.cfg.ScrollBottomTolerance,
		},
		Debounce: time.Duration(a.cfg.SearchDebounceMs) * time.Millisecond,
		Logger:   a.logger,
	})
	if err != nil {
		return err
	}
	a.logger.Info("[browse] Starting browser")
	return tui.Run(m)
}

func (a *app) pickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a random place from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			venues, err := a.loader().Load(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, catalog.LoadFailedMessage)
				return err
			}

			picker := a.picker()
			fmt.Println("🎲 오늘의 식당을 고르는 중...")
			v, err := picker.Spin(ctx, venues)
			if errors.Is(err, catalog.ErrNotReady) {
				fmt.Fprintln(os.Stderr, catalog.NotReadyMessage)
			}
			if err != nil {
				return err
			}
			printDetail(os.Stdout, catalog.NewDetail(v))
			return nil
		},
	}
}

func printDetail(w io.Writer, d catalog.Detail) {
	fmt.Fprintf(w, "\n  %s  %s\n\n", detailTitleStyle.Render(d.Title), d.Category)
	rows := [][2]string{
		{"이미지", d.ImageURL},
		{"설명", d.Description},
		{"방문자 리뷰", d.VisitorReviews},
		{"블로그 리뷰", d.BlogReviews},
		{"주소", d.Address},
		{"전화", d.Phone},
		{"영업시간", d.BusinessHours},
	}
	if d.ShowMap() {
		rows = append(rows, [2]string{catalog.MapActionLabel, d.MapURL})
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %s %s\n", detailLabelStyle.Render(r[0]), strings.TrimSpace(r[1]))
	}
	fmt.Fprintln(w)
}
