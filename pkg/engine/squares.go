package engine

import "github.com/notnil/chess"

func fileOf(sq chess.Square) int { return int(sq.File()) }
func rankOf(sq chess.Square) int { return int(sq.Rank()) }

func squareAt(file, rank int) chess.Square {
	return chess.Square(rank*8 + file)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// chebyshev is the king-move distance between two squares.
func chebyshev(a, b chess.Square) int {
	df := abs(fileOf(a) - fileOf(b))
	dr := abs(rankOf(a) - rankOf(b))
	if df > dr {
		return df
	}
	return dr
}

func kingSquare(pos *chess.Position, color chess.Color) (chess.Square, bool) {
	for sq, piece := range pos.Board().SquareMap() {
		if piece.Type() == chess.King && piece.Color() == color {
			return sq, true
		}
	}
	return chess.NoSquare, false
}

func pieceSquares(pos *chess.Position, color chess.Color) []chess.Square {
	var squares []chess.Square
	for sq, piece := range pos.Board().SquareMap() {
		if piece.Color() == color {
			squares = append(squares, sq)
		}
	}
	return squares
}

// lightSquare reports whether sq is a light square (a1 is dark).
func lightSquare(sq chess.Square) bool {
	return (fileOf(sq)+rankOf(sq))%2 == 1
}
