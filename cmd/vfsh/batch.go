// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"vfsh/internal/commands"
)

// runBatch runs one line per command from r. Blank lines and lines starting
// with # are skipped. A rejected line is reported on errOut with its line
// number and does not stop the script; /quit does.
func runBatch(ctx context.Context, r io.Reader, out, errOut io.Writer, registry *commands.Registry, env *commands.Env, logger zerolog.Logger) error {
	logger.Debug().Msg("Running in batch mode")

	scanner := bufio.NewScanner(r)
	lineNo, rejected := 0, 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		reply := registry.Handle(line, env)
		if reply.Err != nil {
			rejected++
			logger.Warn().Int("line", lineNo).Str("input", line).Err(reply.Err).Msg("Line rejected")
			fmt.Fprintf(errOut, "line %d: %v\n", lineNo, reply.Err)
			continue
		}
		logger.Debug().Int("line", lineNo).Str("input", line).Msg("Line accepted")
		if reply.Text != "" {
			fmt.Fprintln(out, reply.Text)
		}
		if reply.Quit {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	logger.Info().Int("lines", lineNo).Int("rejected", rejected).Msg("Batch finished")
	if rejected > 0 {
		return fmt.Errorf("%w: %d rejected", errRejected, rejected)
	}
	return nil
}
