package models

// All lists every entity in migration order.
func All() []any {
	return []any{
		&Member{},
		&RefreshToken{},
		&Brand{},
		&Accord{},
		&Perfume{},
		&PerfumeLike{},
		&Review{},
		&ReviewLike{},
		&Article{},
		&ArticleImage{},
		&Comment{},
		&Vote{},
		&VoteItem{},
		&VoteMember{},
	}
}
