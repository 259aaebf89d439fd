package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Andert51/P-Music-td/internal/storage/assetstore"
)

func TestMapStoreError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"тип", assetstore.ErrInvalidType, ErrInvalidType},
		{"размер", assetstore.ErrTooLarge, ErrTooLarge},
		{"нет файла", assetstore.ErrNotFound, ErrNotFound},
		{"имя", assetstore.ErrInvalidName, ErrValidation},
		{"поток не читается", fmt.Errorf("%w: размер аудиофайл не определён", assetstore.ErrUnreadable), ErrValidation},
		{"запись", assetstore.ErrWrite, ErrStorage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapStoreError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("mapStoreError(%v) = %v, ожидалась %v", tt.err, got, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Error("исходная ошибка потеряна")
			}
			if tt.want != ErrStorage && errors.Is(got, ErrStorage) {
				t.Error("ошибка клиента классифицирована как ошибка хранилища")
			}
		})
	}
}

func TestCheckTrackNumber(t *testing.T) {
	for _, n := range []int{0, -1, maxColumnInt + 1} {
		if err := checkTrackNumber(n); !errors.Is(err, ErrValidation) {
			t.Errorf("checkTrackNumber(%d) = %v, ожидалась ErrValidation", n, err)
		}
	}
	if err := checkTrackNumber(maxColumnInt); err != nil {
		t.Errorf("checkTrackNumber(max) = %v", err)
	}
}
