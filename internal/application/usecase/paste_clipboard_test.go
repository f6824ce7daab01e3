package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/textedit/internal/application/port/mocks"
	"github.com/bnema/textedit/internal/application/usecase"
	"github.com/bnema/textedit/internal/domain/entity"
)

func TestPasteFromClipboard(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		readErr error
		wantOK  bool
		wantErr bool
	}{
		{name: "text", text: "hello", wantOK: true},
		{name: "empty clipboard", text: ""},
		{name: "read failure", readErr: errors.New("no display"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			clip := mocks.NewMockClipboard(ctrl)
			clip.EXPECT().ReadText(gomock.Any()).Return(tt.text, tt.readErr)

			uc := usecase.NewPasteFromClipboardUseCase(clip)
			ev, ok, err := uc.Paste(testContext())

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, entity.PasteEvent{Text: tt.text}, ev)
			}
		})
	}
}

func TestPasteFromClipboard_NilClipboard(t *testing.T) {
	uc := usecase.NewPasteFromClipboardUseCase(nil)
	_, _, err := uc.Paste(testContext())
	assert.Error(t, err)
}
