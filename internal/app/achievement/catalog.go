package achievement

import "github.com/ritual-sh/ritual/internal/domain"

// Catalog returns the immutable achievement catalog. Keys are unique;
// unlock state lives in the store, never here. Which achievement
// condition has been met is decided by the calling layer — this
// package only guarantees the unlock happens exactly once.
func Catalog() []domain.Achievement {
	return []domain.Achievement{
		{Key: "first_steps", Name: "First Steps", Description: "Complete your first day of tracking", Icon: "footprints", XPReward: 50},
		{Key: "on_fire", Name: "On Fire", Description: "7-day perfect streak", Icon: "flame", XPReward: 200},
		{Key: "iron_will", Name: "Iron Will", Description: "30-day perfect streak", Icon: "shield", XPReward: 500},
		{Key: "documented", Name: "Documented", Description: "30 days of progress photos", Icon: "camera", XPReward: 300},
		{Key: "dog_whisperer", Name: "Dog Whisperer", Description: "100 total dog walks", Icon: "dog", XPReward: 400},
		{Key: "compliant", Name: "Compliant", Description: "95%+ medication compliance for a month", Icon: "pill", XPReward: 350},
		{Key: "pearly_whites", Name: "Pearly Whites", Description: "30-day oral hygiene streak", Icon: "smile", XPReward: 250},
		{Key: "time_lord", Name: "Time Lord", Description: "Stay under time wasting goal for 7 days straight", Icon: "clock", XPReward: 200},
		{Key: "century_club", Name: "Century Club", Description: "100 pushups in a single day", Icon: "dumbbell", XPReward: 150},
		{Key: "pushup_champion", Name: "Pushup Champion", Description: "Hit 36,500 yearly pushup goal", Icon: "trophy", XPReward: 1000},
		{Key: "week_warrior", Name: "Week Warrior", Description: "Complete 7 consecutive days of logging", Icon: "calendar", XPReward: 100},
		{Key: "comeback_kid", Name: "Comeback Kid", Description: "Return after missing 3+ days", Icon: "arrow-u-left-top", XPReward: 75, Hidden: true},
		{Key: "early_bird", Name: "Early Bird", Description: "Log all activities before noon for 7 days", Icon: "sun", XPReward: 150, Hidden: true},
		{Key: "night_owl", Name: "Night Owl", Description: "Log evening oral hygiene 30 days in a row", Icon: "moon", XPReward: 200},
		{Key: "bodybuilder", Name: "Bodybuilder", Description: "Log body metrics for 60 consecutive days", Icon: "biceps-flexed", XPReward: 400},
		{Key: "marathon_walker", Name: "Marathon Walker", Description: "Walk 42.195 km total distance", Icon: "map", XPReward: 300},
		{Key: "thousand_pushups", Name: "Thousand Pushups", Description: "Complete 1000 total pushups", Icon: "dumbbell", XPReward: 200},
		{Key: "ten_thousand_pushups", Name: "Ten Thousand Pushups", Description: "Complete 10,000 total pushups", Icon: "dumbbell", XPReward: 500},
		{Key: "weight_loss_5", Name: "Down 5kg", Description: "Lose 5kg from your starting weight", Icon: "trending-down", XPReward: 300, Hidden: true},
		{Key: "level_10", Name: "Double Digits", Description: "Reach level 10", Icon: "star", XPReward: 200},
	}
}
