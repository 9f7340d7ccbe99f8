package mines

import "log/slog"

func (g *Game) win() {
	b := g.board
	b.gameOver, b.won = true, true
	g.setRemainingFlags(0)
	for i := range b.cells {
		if b.cells[i].Value == Mine {
			g.setCell(i, Revealed, Good)
		}
	}
	g.emit(Event{Kind: GameOver, Won: true, RemainingFlags: 0})

	score := g.score(b.totalMines)
	g.saveLocal(score)
	if g.session != nil {
		remote := score
		remote.Name = g.session.Username
		if err := g.saver.SaveRemote(*g.session, remote); err != nil {
			g.logger.Warn("unable to save online score",
				slog.String("username", g.session.Username),
				slog.Any("error", err),
			)
		}
	}

	g.logger.Info("game won",
		slog.String("difficulty", b.difficulty.String()),
		slog.Int("elapsed", b.elapsed),
	)
}

func (g *Game) lose() {
	b := g.board
	b.gameOver = true

	found := 0
	for i := range b.cells {
		c := b.cells[i]
		if c.State == Flagged {
			if c.Value != Mine {
				g.setCell(i, Revealed, WrongMine)
				continue
			}
			found++
		}
		g.setCell(i, Revealed, c.Value)
	}
	g.emit(Event{Kind: GameOver, Won: false, RemainingFlags: b.remainingFlags})

	g.saveLocal(g.score(found))

	g.logger.Info("game lost",
		slog.String("difficulty", b.difficulty.String()),
		slog.Int("found", found),
		slog.Int("elapsed", b.elapsed),
	)
}

func (g *Game) score(found int) Score {
	return Score{
		Name:        g.playerName,
		Difficulty:  g.board.difficulty,
		ElapsedTime: g.board.elapsed,
		FoundMines:  found,
		TotalMines:  g.board.totalMines,
		PlayedAt:    g.now(),
	}
}

func (g *Game) saveLocal(s Score) {
	if err := g.saver.SaveLocal(s); err != nil {
		g.logger.Warn("unable to save local score", slog.Any("error", err))
	}
}
