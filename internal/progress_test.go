package internal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestShowProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		fn      func() error
		wantErr bool
	}{
		{
			name:    "successful function",
			message: "Testing",
			fn: func() error {
				return nil
			},
			wantErr: false,
		},
		{
			name:    "function with error",
			message: "Testing error",
			fn: func() error {
				return errors.New("test error")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgress(ctx, tt.message, tt.fn)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShowProgress_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Without a TTY the function runs to completion regardless of ctx
	err := ShowProgress(ctx, "Testing", func() error {
		time.Sleep(100 * time.Millisecond)
		return nil
	})
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("ShowProgress() error = %v", err)
	}
}

func TestStepPrinter(t *testing.T) {
	tests := []struct {
		name string
		step Step
		want string
	}{
		{
			name: "all branches and authors",
			step: Step{Index: 1, Total: 4, Repo: "/home/me/proj", Branch: AllBranches},
			want: "[1/4] proj (all branches, all authors)\n",
		},
		{
			name: "named branch and author",
			step: Step{Index: 3, Total: 4, Repo: "/srv/api", Branch: "main", Author: "Ann"},
			want: "[3/4] api (main, Ann)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			StepPrinter(&buf)(tt.step)
			if got := buf.String(); got != tt.want {
				t.Errorf("StepPrinter() wrote %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTerminal_NonFile(t *testing.T) {
	var buf bytes.Buffer
	if IsTerminal(&buf) {
		t.Error("IsTerminal() = true for a bytes.Buffer")
	}
	if IsTerminal(&strings.Builder{}) {
		t.Error("IsTerminal() = true for a strings.Builder")
	}
}

func TestFprintInfo(t *testing.T) {
	var buf bytes.Buffer
	FprintInfo(&buf, "No commits found")
	if got := buf.String(); got != "No commits found\n" {
		t.Errorf("FprintInfo() wrote %q", got)
	}
}
