package book

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMux(t *testing.T) (*http.ServeMux, *MockRepository) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	handler := NewHTTPHandler(NewService(mockRepo), slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	handler.Register(mux)
	return mux, mockRepo
}

func serve(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestHTTPHandler_Create(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *Book) error {
				b.ID = 1
				return nil
			})

		w := serve(mux, http.MethodPost, "/api/v1/books/",
			`{"title":"Clean Architecture","author":"Robert Martin","count_pages":300,"year":2025,"seller_id":4}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var got map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, map[string]any{
			"id":        float64(1),
			"title":     "Clean Architecture",
			"author":    "Robert Martin",
			"year":      float64(2025),
			"pages":     float64(300),
			"seller_id": float64(4),
		}, got)
	})

	t.Run("year too old", func(t *testing.T) {
		mux, _ := newTestMux(t)

		w := serve(mux, http.MethodPost, "/api/v1/books/",
			`{"title":"Old Book","author":"Old Author","count_pages":300,"year":1999,"seller_id":1}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Year is too old!")
	})

	t.Run("year just below minimum", func(t *testing.T) {
		mux, _ := newTestMux(t)

		w := serve(mux, http.MethodPost, "/api/v1/books/",
			`{"title":"T","author":"A","count_pages":300,"year":2019,"seller_id":1}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Year is too old!")
	})

	t.Run("padded title echoed back", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *Book) error {
				b.ID = 1
				return nil
			})

		w := serve(mux, http.MethodPost, "/api/v1/books/",
			`{"title":"  Clean Architecture ","author":"Robert Martin","count_pages":300,"year":2025,"seller_id":4}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var got Book
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, "  Clean Architecture ", got.Title)
	})

	t.Run("integers beyond column range", func(t *testing.T) {
		mux, _ := newTestMux(t)

		w := serve(mux, http.MethodPost, "/api/v1/books/",
			`{"title":"T","author":"A","count_pages":3000000000,"year":3000000000,"seller_id":1}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `"field":"count_pages"`)
		assert.Contains(t, body, `"field":"year"`)
	})

	t.Run("unknown seller", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrSellerNotFound)

		w := serve(mux, http.MethodPost, "/api/v1/books",
			`{"title":"T","author":"A","count_pages":10,"year":2024,"seller_id":42}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "seller_id")
	})

	t.Run("missing fields", func(t *testing.T) {
		mux, _ := newTestMux(t)

		w := serve(mux, http.MethodPost, "/api/v1/books/", `{"year":2024}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := w.Body.String()
		for _, field := range []string{"title", "author", "count_pages", "seller_id"} {
			assert.Contains(t, body, `"field":"`+field+`"`)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		mux, _ := newTestMux(t)

		w := serve(mux, http.MethodPost, "/api/v1/books/", `{"title":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_List(t *testing.T) {
	t.Run("books container", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().List(gomock.Any()).Return([]Book{
			{ID: 1, Title: "Eugeny Onegin", Author: "Pushkin", Year: 2021, Pages: 104, SellerID: 3},
			{ID: 2, Title: "Mziri", Author: "Lermontov", Year: 2022, Pages: 104, SellerID: 3},
		}, nil)

		w := serve(mux, http.MethodGet, "/api/v1/books/", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"books":[
			{"id":1,"title":"Eugeny Onegin","author":"Pushkin","year":2021,"pages":104,"seller_id":3},
			{"id":2,"title":"Mziri","author":"Lermontov","year":2022,"pages":104,"seller_id":3}
		]}`, w.Body.String())
	})

	t.Run("empty", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, nil)

		w := serve(mux, http.MethodGet, "/api/v1/books", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"books":[]}`, w.Body.String())
	})

	t.Run("server error", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, context.DeadlineExceeded)

		w := serve(mux, http.MethodGet, "/api/v1/books/", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "deadline")
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		setupMock      func(*MockRepository)
		expectedStatus int
	}{
		{
			name: "found",
			path: "/api/v1/books/5",
			setupMock: func(m *MockRepository) {
				m.EXPECT().GetByID(gomock.Any(), int64(5)).
					Return(Book{ID: 5, Title: "Eugeny Onegin", Author: "Pushkin", Year: 2021, Pages: 104, SellerID: 3}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			path: "/api/v1/books/999",
			setupMock: func(m *MockRepository) {
				m.EXPECT().GetByID(gomock.Any(), int64(999)).Return(Book{}, ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "non numeric id",
			path:           "/api/v1/books/abc",
			setupMock:      func(*MockRepository) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "zero id",
			path:           "/api/v1/books/0",
			setupMock:      func(*MockRepository) {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, mockRepo := newTestMux(t)
			tt.setupMock(mockRepo)

			w := serve(mux, http.MethodGet, tt.path, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHTTPHandler_Update(t *testing.T) {
	const body = `{"title":"Mziri","author":"Lermontov","pages":100,"year":2027,"id":77,"seller_id":3}`

	t.Run("path id wins over body id", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		want := &Book{ID: 5, Title: "Mziri", Author: "Lermontov", Year: 2027, Pages: 100, SellerID: 3}
		mockRepo.EXPECT().Update(gomock.Any(), want).Return(nil)

		w := serve(mux, http.MethodPut, "/api/v1/books/5", body)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":5,"title":"Mziri","author":"Lermontov","year":2027,"pages":100,"seller_id":3}`, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(ErrNotFound)

		w := serve(mux, http.MethodPut, "/api/v1/books/999", body)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("year too old", func(t *testing.T) {
		mux, _ := newTestMux(t)

		w := serve(mux, http.MethodPut, "/api/v1/books/5",
			`{"title":"Mziri","author":"Lermontov","pages":100,"year":2007,"seller_id":3}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Year is too old!")
	})

	t.Run("year just below minimum", func(t *testing.T) {
		mux, _ := newTestMux(t)

		w := serve(mux, http.MethodPut, "/api/v1/books/5",
			`{"title":"Mziri","author":"Lermontov","pages":100,"year":2019,"seller_id":3}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "Year is too old!")
	})

	t.Run("pages beyond column range", func(t *testing.T) {
		mux, _ := newTestMux(t)

		w := serve(mux, http.MethodPut, "/api/v1/books/5",
			`{"title":"Mziri","author":"Lermontov","pages":3000000000,"year":2027,"seller_id":3}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"pages"`)
	})
}

func TestHTTPHandler_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().Delete(gomock.Any(), int64(5)).Return(nil)

		w := serve(mux, http.MethodDelete, "/api/v1/books/5", "")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		mux, mockRepo := newTestMux(t)
		mockRepo.EXPECT().Delete(gomock.Any(), int64(999)).Return(ErrNotFound)

		w := serve(mux, http.MethodDelete, "/api/v1/books/999", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
