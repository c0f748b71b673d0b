package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_Validate(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want error
	}{
		{name: "valid", card: Card{ID: 1, Term: "Cat", ImageURL: "cat.png"}},
		{name: "valid without image", card: Card{ID: 1, Term: "Cat"}},
		{name: "missing id", card: Card{Term: "Cat"}, want: ErrCardIDEmpty},
		{name: "missing term", card: Card{ID: 1}, want: ErrCardTermEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
