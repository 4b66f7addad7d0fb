// Package hashing provides Zobrist position hashing and duplicate detection.
package hashing

import (
	"math/rand"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

// zobristSeed fixes the key tables so hashes are stable across runs.
const zobristSeed = 0x5eed

var (
	pieceKeys     [3][chess.NumKinds][chess.NumSquares]uint64
	movedKeys     [chess.NumSquares]uint64
	enPassantKeys [chess.NumSquares]uint64
	promotionKeys [chess.NumSquares]uint64
	blackToMove   uint64
)

func init() {
	rng := rand.New(rand.NewSource(zobristSeed))
	for c := range pieceKeys {
		for k := range pieceKeys[c] {
			for sq := range pieceKeys[c][k] {
				pieceKeys[c][k][sq] = rng.Uint64()
			}
		}
	}
	for sq := 0; sq < chess.NumSquares; sq++ {
		movedKeys[sq] = rng.Uint64()
		enPassantKeys[sq] = rng.Uint64()
		promotionKeys[sq] = rng.Uint64()
	}
	blackToMove = rng.Uint64()
}

// Hash returns the Zobrist hash of everything a board carries: pieces, moved
// flags, en passant markers, the side to move and a pending promotion.
func Hash(b *chess.Board) uint64 {
	var h uint64
	for i, p := range b.Squares {
		if p.IsEmpty() {
			continue
		}
		h ^= pieceKeys[p.Colour][p.Kind][i]
		if p.Moved {
			h ^= movedKeys[i]
		}
		if p.EnPassant != nil && p.EnPassant.Valid() {
			h ^= enPassantKeys[p.EnPassant.Index()]
		}
	}
	if b.ToMove == chess.Black {
		h ^= blackToMove
	}
	if b.Promoting != nil && b.Promoting.Valid() {
		h ^= promotionKeys[b.Promoting.Index()]
	}
	return h
}
