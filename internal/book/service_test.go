package book

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		Title:    "Clean Architecture",
		Author:   "Robert Martin",
		Year:     2025,
		Pages:    300,
		SellerID: 7,
	}
}

func TestInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"valid", func(*Input) {}, ""},
		{"boundary year", func(in *Input) { in.Year = MinYear }, ""},
		{"old year", func(in *Input) { in.Year = 1999 }, "year"},
		{"year just below minimum", func(in *Input) { in.Year = MinYear - 1 }, "year"},
		{"year above maximum", func(in *Input) { in.Year = MaxYear + 1 }, "year"},
		{"year at maximum", func(in *Input) { in.Year = MaxYear }, ""},
		{"too many pages", func(in *Input) { in.Pages = MaxPages + 1 }, "pages"},
		{"padded title is kept", func(in *Input) { in.Title = "  Clean Architecture " }, ""},
		{"blank title", func(in *Input) { in.Title = "  " }, "title"},
		{"blank author", func(in *Input) { in.Author = "" }, "author"},
		{"zero pages", func(in *Input) { in.Pages = 0 }, "pages"},
		{"missing seller", func(in *Input) { in.SellerID = 0 }, "seller_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	t.Run("stores book and returns generated id", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(gomock.Any(), &Book{Title: "Clean Architecture", Author: "Robert Martin", Year: 2025, Pages: 300, SellerID: 7}).
			DoAndReturn(func(_ context.Context, b *Book) error {
				b.ID = 11
				return nil
			})

		got, err := service.Create(ctx, validInput())
		require.NoError(t, err)
		assert.Equal(t, Book{ID: 11, Title: "Clean Architecture", Author: "Robert Martin", Year: 2025, Pages: 300, SellerID: 7}, got)
	})

	t.Run("text fields are stored as given", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(gomock.Any(), &Book{Title: "  Clean Architecture ", Author: " Robert Martin", Year: 2025, Pages: 300, SellerID: 7}).
			Return(nil)

		in := validInput()
		in.Title = "  Clean Architecture "
		in.Author = " Robert Martin"
		got, err := service.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "  Clean Architecture ", got.Title)
		assert.Equal(t, " Robert Martin", got.Author)
	})

	t.Run("old year never reaches the store", func(t *testing.T) {
		in := validInput()
		in.Year = 1999

		_, err := service.Create(ctx, in)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, MsgYearTooOld, ve.Message)
	})

	t.Run("unknown seller", func(t *testing.T) {
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ErrSellerNotFound)

		_, err := service.Create(ctx, validInput())
		assert.ErrorIs(t, err, ErrSellerNotFound)
	})
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)

	t.Run("empty store yields empty slice", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, nil)

		books, err := service.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("store error", func(t *testing.T) {
		mockRepo.EXPECT().List(gomock.Any()).Return(nil, context.DeadlineExceeded)

		_, err := service.List(context.Background())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	t.Run("replaces all fields", func(t *testing.T) {
		in := Input{Title: "Mziri", Author: "Lermontov", Year: 2027, Pages: 100, SellerID: 7}
		want := Book{ID: 5, Title: "Mziri", Author: "Lermontov", Year: 2027, Pages: 100, SellerID: 7}
		mockRepo.EXPECT().Update(gomock.Any(), &want).Return(nil)

		got, err := service.Update(ctx, 5, in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("revalidates year", func(t *testing.T) {
		in := validInput()
		in.Year = 2007

		_, err := service.Update(ctx, 5, in)
		var ve *ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "year", ve.Field)
	})

	t.Run("missing book", func(t *testing.T) {
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(ErrNotFound)

		_, err := service.Update(ctx, 999, validInput())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_GetAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.EXPECT().GetByID(gomock.Any(), int64(999)).Return(Book{}, ErrNotFound)
	_, err := service.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	mockRepo.EXPECT().Delete(gomock.Any(), int64(999)).Return(ErrNotFound)
	assert.ErrorIs(t, service.Delete(ctx, 999), ErrNotFound)

	mockRepo.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)
	assert.NoError(t, service.Delete(ctx, 3))
}
