package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardValueNonAce(t *testing.T) {
	expected := map[Rank]int{
		Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7, Eight: 8, Nine: 9, Ten: 10,
		Jack: 10, Queen: 10, King: 10,
	}

	for rank, want := range expected {
		for _, suit := range Suits {
			c := NewCard(rank, suit)
			// Score must not matter for anything but aces
			for _, score := range []int{0, 5, 10, 11, 15, 20, 21, 30} {
				assert.Equal(t, want, c.Value(score), "%s at score %d", c, score)
			}
		}
	}
}

func TestCardValueAce(t *testing.T) {
	ace := NewCard(Ace, Spades)

	tests := []struct {
		score int
		want  int
	}{
		{0, 11},
		{5, 11},
		{10, 11},
		{11, 1},
		{15, 1},
		{20, 1},
		{21, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ace.Value(tt.score), "ace at score %d", tt.score)
	}

	// 5 + A = 16 and 15 + A = 16
	assert.Equal(t, 16, 5+ace.Value(5))
	assert.Equal(t, 16, 15+ace.Value(15))
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Ace, Spades).String())
	assert.Equal(t, "10♥", NewCard(Ten, Hearts).String())
	assert.Equal(t, "7♦", NewCard(Seven, Diamonds).String())
	assert.Equal(t, "K♣", NewCard(King, Clubs).String())
	assert.True(t, NewCard(Two, Hearts).IsRed())
	assert.False(t, NewCard(Two, Clubs).IsRed())
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{input: "As", want: NewCard(Ace, Spades)},
		{input: "2c", want: NewCard(Two, Clubs)},
		{input: "9d", want: NewCard(Nine, Diamonds)},
		{input: "Th", want: NewCard(Ten, Hearts)},
		{input: "10h", want: NewCard(Ten, Hearts)},
		{input: "kD", want: NewCard(King, Diamonds)},
		{input: "Qs", want: NewCard(Queen, Spades)},
		{input: "Jc", want: NewCard(Jack, Clubs)},
		{input: "1s", wantErr: true},
		{input: "Ax", wantErr: true},
		{input: "A", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCards(t *testing.T) {
	cards, err := ParseCards("As  Kd 10c")
	require.NoError(t, err)
	assert.Equal(t, []Card{
		NewCard(Ace, Spades),
		NewCard(King, Diamonds),
		NewCard(Ten, Clubs),
	}, cards)

	_, err = ParseCards("As Zz")
	assert.Error(t, err)

	assert.Panics(t, func() { MustParseCards("nope") })
}
