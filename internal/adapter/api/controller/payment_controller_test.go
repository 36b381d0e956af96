package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/gestor-vendas/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// O pool de conexões é nil de propósito: requisição inválida tem que ser
// barrada antes de abrir transação ou tocar qualquer repositório.
func newAllocateRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := NewPaymentController(nil, nil, nil, logger.NewZapLogger(zaptest.NewLogger(t)))

	r := gin.New()
	r.POST("/payments/allocate", ctrl.Allocate)
	return r
}

func postAllocation(t *testing.T, r *gin.Engine, body map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/payments/allocate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAllocateInvalidAmountBeforeStorage(t *testing.T) {
	cases := []struct {
		name   string
		amount string
	}{
		{"zero", "0"},
		{"negativo", "-5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAllocateRouter(t)

			w := postAllocation(t, r, map[string]string{
				"client_phone": "5511999990001",
				"amount":       tc.amount,
				"method":       "cash",
			})

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAllocateMalformedAmountBeforeStorage(t *testing.T) {
	r := newAllocateRouter(t)

	w := postAllocation(t, r, map[string]string{
		"client_phone": "5511999990001",
		"amount":       "dez",
		"method":       "cash",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAllocateUnknownMethodBeforeStorage(t *testing.T) {
	r := newAllocateRouter(t)

	w := postAllocation(t, r, map[string]string{
		"client_phone": "5511999990001",
		"amount":       "50",
		"method":       "cheque",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
