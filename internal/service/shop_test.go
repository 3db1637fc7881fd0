package service

import (
	"context"
	"testing"

	"habitquest/internal/model"
	"habitquest/internal/repository"
	"habitquest/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestShopService_UnlockAvatar(t *testing.T) {
	tests := []struct {
		name          string
		avatarID      string
		mockSetup     func(*mocks.MockShopRepository)
		expectedError error
		check         func(*testing.T, *model.Player)
	}{
		{
			name:          "Unknown avatar",
			avatarID:      "shrek",
			expectedError: ErrAvatarUnknown,
		},
		{
			name:     "Successful unlock debits gold and selects",
			avatarID: "elara",
			mockSetup: func(m *mocks.MockShopRepository) {
				m.On("GetPlayer", mock.Anything, int64(1)).
					Return(&model.Player{
						UserID:          1,
						Gold:            600,
						AvatarID:        "kai",
						UnlockedAvatars: []string{"kai"},
					}, nil)
				m.On("SaveSpend", mock.Anything,
					mock.MatchedBy(func(p *model.Player) bool {
						return p.Gold == 100 && p.AvatarID == "elara" && p.HasAvatar("elara")
					}),
					mock.MatchedBy(func(e *model.HistoryEntry) bool {
						return e.Status == model.HistoryStatusShopping
					})).Return(nil)
			},
			check: func(t *testing.T, p *model.Player) {
				assert.Equal(t, 100, p.Gold)
				assert.Equal(t, "elara", p.AvatarID)
			},
		},
		{
			name:     "Insufficient gold",
			avatarID: "nova",
			mockSetup: func(m *mocks.MockShopRepository) {
				m.On("GetPlayer", mock.Anything, int64(1)).
					Return(&model.Player{UserID: 1, Gold: 100, UnlockedAvatars: []string{"kai"}}, nil)
			},
			expectedError: ErrInsufficientGold,
		},
		{
			name:     "Already owned avatar is selected without charging",
			avatarID: "elara",
			mockSetup: func(m *mocks.MockShopRepository) {
				m.On("GetPlayer", mock.Anything, int64(1)).
					Return(&model.Player{
						UserID:          1,
						Gold:            50,
						AvatarID:        "kai",
						UnlockedAvatars: []string{"kai", "elara"},
					}, nil)
				m.On("UpdatePlayer", mock.Anything,
					mock.MatchedBy(func(p *model.Player) bool {
						return p.AvatarID == "elara" && p.Gold == 50
					})).Return(nil)
			},
			check: func(t *testing.T, p *model.Player) {
				assert.Equal(t, 50, p.Gold)
				assert.Equal(t, "elara", p.AvatarID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockShopRepository{}
			if tt.mockSetup != nil {
				tt.mockSetup(mockRepo)
			}
			service := NewShopService(mockRepo, nil)

			p, err := service.UnlockAvatar(context.Background(), 1, tt.avatarID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				tt.check(t, p)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestShopService_SelectAvatar(t *testing.T) {
	t.Run("Not unlocked", func(t *testing.T) {
		mockRepo := &mocks.MockShopRepository{}
		mockRepo.On("GetPlayer", mock.Anything, int64(1)).
			Return(&model.Player{UserID: 1, UnlockedAvatars: []string{"kai"}}, nil)

		service := NewShopService(mockRepo, nil)
		_, err := service.SelectAvatar(context.Background(), 1, "rex")
		assert.ErrorIs(t, err, ErrAvatarNotUnlocked)
	})

	t.Run("Switch to owned avatar", func(t *testing.T) {
		mockRepo := &mocks.MockShopRepository{}
		mockRepo.On("GetPlayer", mock.Anything, int64(1)).
			Return(&model.Player{UserID: 1, AvatarID: "kai", UnlockedAvatars: []string{"kai", "rex"}}, nil)
		mockRepo.On("UpdatePlayer", mock.Anything,
			mock.MatchedBy(func(p *model.Player) bool { return p.AvatarID == "rex" })).
			Return(nil)

		service := NewShopService(mockRepo, nil)
		p, err := service.SelectAvatar(context.Background(), 1, "rex")
		assert.NoError(t, err)
		assert.Equal(t, "rex", p.AvatarID)
	})
}

func TestShopService_AddReward(t *testing.T) {
	t.Run("Blank title rejected", func(t *testing.T) {
		service := NewShopService(&mocks.MockShopRepository{}, nil)
		_, err := service.AddReward(context.Background(), 1, "  ", 100)
		assert.ErrorIs(t, err, ErrInvalidReward)
	})

	t.Run("Negative cost clamps to zero", func(t *testing.T) {
		mockRepo := &mocks.MockShopRepository{}
		mockRepo.On("CreateReward", mock.Anything,
			mock.MatchedBy(func(w *model.Reward) bool { return w.Cost == 0 })).
			Return(nil)

		service := NewShopService(mockRepo, nil)
		w, err := service.AddReward(context.Background(), 1, "Movie night", -5)
		assert.NoError(t, err)
		assert.Equal(t, 0, w.Cost)
		mockRepo.AssertExpectations(t)
	})
}

func TestShopService_BuyReward(t *testing.T) {
	rewardID := uuid.New()

	tests := []struct {
		name          string
		mockSetup     func(*mocks.MockShopRepository)
		expectedError error
		check         func(*testing.T, *model.Player)
	}{
		{
			name: "Reward not found",
			mockSetup: func(m *mocks.MockShopRepository) {
				m.On("GetReward", mock.Anything, int64(1), rewardID).
					Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrRewardNotFound,
		},
		{
			name: "Insufficient gold leaves the player untouched",
			mockSetup: func(m *mocks.MockShopRepository) {
				m.On("GetReward", mock.Anything, int64(1), rewardID).
					Return(&model.Reward{ID: rewardID, UserID: 1, Title: "Pizza", Cost: 200}, nil)
				m.On("GetPlayer", mock.Anything, int64(1)).
					Return(&model.Player{UserID: 1, Gold: 100}, nil)
			},
			expectedError: ErrInsufficientGold,
		},
		{
			name: "Purchase debits gold and appends a Shopping entry",
			mockSetup: func(m *mocks.MockShopRepository) {
				m.On("GetReward", mock.Anything, int64(1), rewardID).
					Return(&model.Reward{ID: rewardID, UserID: 1, Title: "Pizza", Cost: 200}, nil)
				m.On("GetPlayer", mock.Anything, int64(1)).
					Return(&model.Player{UserID: 1, Gold: 250}, nil)
				m.On("SaveSpend", mock.Anything,
					mock.MatchedBy(func(p *model.Player) bool { return p.Gold == 50 }),
					mock.MatchedBy(func(e *model.HistoryEntry) bool {
						return e.Status == model.HistoryStatusShopping && e.Title == "Bought Reward: Pizza"
					})).Return(nil)
			},
			check: func(t *testing.T, p *model.Player) {
				assert.Equal(t, 50, p.Gold)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mocks.MockShopRepository{}
			tt.mockSetup(mockRepo)
			service := NewShopService(mockRepo, nil)

			p, err := service.BuyReward(context.Background(), 1, rewardID)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				tt.check(t, p)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestShopService_DeleteReward(t *testing.T) {
	rewardID := uuid.New()

	mockRepo := &mocks.MockShopRepository{}
	mockRepo.On("DeleteReward", mock.Anything, int64(1), rewardID).
		Return(repository.ErrNotFound)

	service := NewShopService(mockRepo, nil)
	err := service.DeleteReward(context.Background(), 1, rewardID)
	assert.ErrorIs(t, err, ErrRewardNotFound)
}
