package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/rockethook/pkg/domain/model"
)

func TestConfigTimeout(t *testing.T) {
	t.Run("Empty timeout means none", func(t *testing.T) {
		config := model.Config{}
		timeout, err := config.GetTimeout()
		gt.NoError(t, err)
		gt.Equal(t, timeout, time.Duration(0))
	})

	t.Run("Parses duration", func(t *testing.T) {
		config := model.Config{Timeout: "15s"}
		timeout, err := config.GetTimeout()
		gt.NoError(t, err)
		gt.Equal(t, timeout, 15*time.Second)
	})

	t.Run("Invalid duration", func(t *testing.T) {
		config := model.Config{Timeout: "soon"}
		_, err := config.GetTimeout()
		gt.Error(t, err)
	})
}
