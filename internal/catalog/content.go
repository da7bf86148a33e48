package catalog

// Seed content. Ids and achievement keys are persisted inside profiles and
// must stay stable across releases.

var trainingItems = []TrainingItem{
	// Skill work
	{
		ID:           "siu-nim-tau",
		Title:        "Siu Nim Tau",
		Description:  "The first form. Slow, deliberate repetitions focused on elbow position and centreline.",
		Duration:     300,
		XP:           25,
		StaminaCost:  10,
		RequiredBelt: 0,
		VideoRef:     "videos/siu-nim-tau",
	},
	{
		ID:           "chain-punches",
		Title:        "Chain Punches",
		Description:  "Continuous vertical punches along the centreline. Relax the shoulders, let the elbows drive.",
		Duration:     120,
		XP:           10,
		StaminaCost:  8,
		RequiredBelt: 0,
		VideoRef:     "videos/chain-punches",
	},
	{
		ID:           "turning-stance",
		Title:        "Turning Stance",
		Description:  "Yee Jee Kim Yeung Ma pivots. Keep the knees adducted and the weight centred through the turn.",
		Duration:     180,
		XP:           15,
		StaminaCost:  8,
		RequiredBelt: 0,
	},
	{
		ID:           "pak-sau-drill",
		Title:        "Pak Sau Drill",
		Description:  "Slapping deflection against a partner or the wall bag, alternating sides.",
		Duration:     180,
		XP:           15,
		StaminaCost:  10,
		RequiredBelt: 1,
		VideoRef:     "videos/pak-sau",
	},
	{
		ID:           "lap-sau-drill",
		Title:        "Lap Sau Drill",
		Description:  "Cyclic pulling-hand exchange. Maintain forward intent while the arms rotate.",
		Duration:     240,
		XP:           20,
		StaminaCost:  12,
		RequiredBelt: 2,
		VideoRef:     "videos/lap-sau",
	},
	{
		ID:           "chum-kiu",
		Title:        "Chum Kiu",
		Description:  "The second form. Turning, stepping and kicking while seeking the bridge.",
		Duration:     360,
		XP:           35,
		StaminaCost:  14,
		RequiredBelt: 3,
		VideoRef:     "videos/chum-kiu",
	},
	{
		ID:           "chi-sau-rolling",
		Title:        "Chi Sau Rolling",
		Description:  "Poon sau rolling platform. Sensitivity before speed, structure before force.",
		Duration:     300,
		XP:           30,
		StaminaCost:  15,
		RequiredBelt: 4,
	},
	{
		ID:           "wooden-dummy",
		Title:        "Wooden Dummy Sections",
		Description:  "Muk Yan Jong sections one to four. Precision of angles over power of impact.",
		Duration:     420,
		XP:           45,
		StaminaCost:  18,
		RequiredBelt: 5,
		VideoRef:     "videos/wooden-dummy",
	},
	{
		ID:           "biu-jee",
		Title:        "Biu Jee",
		Description:  "The third form. Emergency recovery of the centreline with darting fingers and elbows.",
		Duration:     360,
		XP:           45,
		StaminaCost:  16,
		RequiredBelt: 6,
	},

	// Conditioning
	{
		ID:           "horse-stance-hold",
		Title:        "Horse Stance Hold",
		Description:  "Static hold in the basic stance. Breathe low, keep the pelvis tucked.",
		Duration:     120,
		XP:           10,
		StaminaCost:  10,
		RequiredBelt: 0,
	},
	{
		ID:           "wall-bag",
		Title:        "Wall Bag Punching",
		Description:  "Sets against the three-section wall bag. Build the wrist gradually, never through pain.",
		Duration:     180,
		XP:           15,
		StaminaCost:  12,
		RequiredBelt: 1,
		VideoRef:     "videos/wall-bag",
	},
	{
		ID:           "skipping",
		Title:        "Skipping Rope",
		Description:  "Light footwork conditioning. Stay on the balls of the feet.",
		Duration:     300,
		XP:           20,
		StaminaCost:  15,
		RequiredBelt: 0,
	},
	{
		ID:           "knuckle-pushups",
		Title:        "Knuckle Push-ups",
		Description:  "Push-ups on the first two knuckles, wrists straight, elbows tracked close.",
		Duration:     120,
		XP:           12,
		StaminaCost:  12,
		RequiredBelt: 0,
	},
	{
		ID:           "kicking-drills",
		Title:        "Front Kick Drills",
		Description:  "Low stamping and lifting kicks off the front and rear leg.",
		Duration:     240,
		XP:           18,
		StaminaCost:  14,
		RequiredBelt: 2,
	},
	{
		ID:           "forearm-conditioning",
		Title:        "Forearm Conditioning",
		Description:  "Partner or dummy arm-knocking sets. Build the bridge arms.",
		Duration:     180,
		XP:           15,
		StaminaCost:  10,
		RequiredBelt: 3,
	},

	// Recovery work is deliberately free: no XP, no challenge eligibility
	{
		ID:           "stretch-routine",
		Title:        "Full Stretch Routine",
		Description:  "Hips, hamstrings, shoulders and wrists. Hold each stretch for thirty seconds.",
		Duration:     300,
		XP:           0,
		StaminaCost:  0,
		RequiredBelt: 0,
	},
}

var belts = []Belt{
	{Level: 0, Name: "White Sash", Color: "#f5f5f5", MinXP: 0},
	{Level: 1, Name: "Yellow Sash", Color: "#f2c94c", MinXP: 100},
	{Level: 2, Name: "Orange Sash", Color: "#f2994a", MinXP: 250},
	{Level: 3, Name: "Green Sash", Color: "#27ae60", MinXP: 500},
	{Level: 4, Name: "Blue Sash", Color: "#2f80ed", MinXP: 900},
	{Level: 5, Name: "Purple Sash", Color: "#9b51e0", MinXP: 1400},
	{Level: 6, Name: "Brown Sash", Color: "#8d6e63", MinXP: 2000},
	{Level: 7, Name: "Red Sash", Color: "#eb5757", MinXP: 2750},
	{Level: 8, Name: "Black Sash", Color: "#222222", MinXP: 3600},
}

var achievements = []Achievement{
	{Key: "first-steps", Title: "First Steps", Desc: "Complete your first training session", Icon: "👣", Metric: MetricCompletions, Threshold: 1},
	{Key: "regular", Title: "Regular", Desc: "Complete 10 training sessions", Icon: "🥋", Metric: MetricCompletions, Threshold: 10},
	{Key: "devoted", Title: "Devoted", Desc: "Complete 50 training sessions", Icon: "🏆", Metric: MetricCompletions, Threshold: 50},
	{Key: "xp-100", Title: "Apprentice", Desc: "Earn 100 XP", Icon: "⭐", Metric: MetricXP, Threshold: 100},
	{Key: "xp-500", Title: "Practitioner", Desc: "Earn 500 XP", Icon: "🌟", Metric: MetricXP, Threshold: 500},
	{Key: "xp-2500", Title: "Disciple", Desc: "Earn 2500 XP", Icon: "💫", Metric: MetricXP, Threshold: 2500},
	{Key: "hour-on-the-floor", Title: "Hour on the Floor", Desc: "Accumulate one hour of training", Icon: "⏱️", Metric: MetricDuration, Threshold: 3600},
	{Key: "ten-hours-deep", Title: "Ten Hours Deep", Desc: "Accumulate ten hours of training", Icon: "⌛", Metric: MetricDuration, Threshold: 36000},
	{Key: "streak-3", Title: "Warming Up", Desc: "Keep a 3-day challenge streak", Icon: "🔥", Metric: MetricStreak, Threshold: 3},
	{Key: "streak-7", Title: "Full Week", Desc: "Keep a 7-day challenge streak", Icon: "🗓️", Metric: MetricStreak, Threshold: 7},
	{Key: "streak-30", Title: "Iron Habit", Desc: "Keep a 30-day challenge streak", Icon: "🛡️", Metric: MetricStreak, Threshold: 30},
	{Key: "first-sash", Title: "First Sash", Desc: "Earn your first promotion", Icon: "🎽", Metric: MetricBelt, Threshold: 1},
	{Key: "green-and-beyond", Title: "Green and Beyond", Desc: "Reach the green sash", Icon: "🟢", Metric: MetricBelt, Threshold: 3},
	{Key: "senior-student", Title: "Senior Student", Desc: "Reach the brown sash", Icon: "🟤", Metric: MetricBelt, Threshold: 6},
}

var recommendedPlans = []RecommendedPlan{
	{
		ID:         "cond-beginner-foundations",
		Name:       "Foundations",
		Category:   "conditioning",
		Difficulty: "beginner",
		Phases: PlanPhases{
			Warmup:   []PlanExercise{{ID: "skipping", Duration: 240}},
			Main:     []PlanExercise{{ID: "horse-stance-hold", Duration: 120}, {ID: "knuckle-pushups", Duration: 120}, {ID: "chain-punches", Duration: 120}},
			Cooldown: []PlanExercise{{ID: "stretch-routine", Duration: 300}},
		},
		TotalDuration: 900,
		StaminaCost:   45,
		XPAwarded:     30,
	},
	{
		ID:         "cond-intermediate-bridges",
		Name:       "Building Bridges",
		Category:   "conditioning",
		Difficulty: "intermediate",
		Phases: PlanPhases{
			Warmup:   []PlanExercise{{ID: "skipping", Duration: 300}, {ID: "turning-stance", Duration: 120}},
			Main:     []PlanExercise{{ID: "wall-bag", Duration: 180}, {ID: "kicking-drills", Duration: 240}, {ID: "forearm-conditioning", Duration: 180}},
			Cooldown: []PlanExercise{{ID: "stretch-routine", Duration: 180}},
		},
		TotalDuration: 1020,
		StaminaCost:   59,
		XPAwarded:     50,
	},
	{
		ID:         "skill-beginner-centreline",
		Name:       "Centreline Basics",
		Category:   "skill",
		Difficulty: "beginner",
		Phases: PlanPhases{
			Warmup:   []PlanExercise{{ID: "turning-stance", Duration: 120}},
			Main:     []PlanExercise{{ID: "siu-nim-tau", Duration: 300}, {ID: "chain-punches", Duration: 180}},
			Cooldown: []PlanExercise{{ID: "stretch-routine", Duration: 240}},
		},
		TotalDuration: 840,
		StaminaCost:   26,
		XPAwarded:     30,
	},
	{
		ID:         "skill-intermediate-hands",
		Name:       "Traded Hands",
		Category:   "skill",
		Difficulty: "intermediate",
		Phases: PlanPhases{
			Warmup:   []PlanExercise{{ID: "chain-punches", Duration: 120}},
			Main:     []PlanExercise{{ID: "pak-sau-drill", Duration: 180}, {ID: "lap-sau-drill", Duration: 240}, {ID: "chum-kiu", Duration: 360}},
			Cooldown: []PlanExercise{{ID: "stretch-routine", Duration: 240}},
		},
		TotalDuration: 1140,
		StaminaCost:   44,
		XPAwarded:     60,
	},
	{
		ID:         "skill-advanced-jong",
		Name:       "Jong Session",
		Category:   "skill",
		Difficulty: "advanced",
		Phases: PlanPhases{
			Warmup:   []PlanExercise{{ID: "chum-kiu", Duration: 360}},
			Main:     []PlanExercise{{ID: "wooden-dummy", Duration: 420}, {ID: "chi-sau-rolling", Duration: 300}},
			Cooldown: []PlanExercise{{ID: "stretch-routine", Duration: 180}},
		},
		TotalDuration: 1260,
		StaminaCost:   47,
		XPAwarded:     80,
	},
}

var themes = []Theme{
	{Key: "default", Name: "Temple Red", Primary: "#c0392b", Secondary: "#e67e22"},
	{Key: "jade", Name: "Jade", Primary: "#27ae60", Secondary: "#16a085"},
	{Key: "midnight", Name: "Midnight", Primary: "#2c3e50", Secondary: "#2980b9"},
	{Key: "plum", Name: "Plum Blossom", Primary: "#8e44ad", Secondary: "#e84393"},
}

var avatars = []Avatar{
	{ID: "crane", Emoji: "🦢", Name: "Crane"},
	{ID: "snake", Emoji: "🐍", Name: "Snake"},
	{ID: "dragon", Emoji: "🐲", Name: "Dragon"},
	{ID: "tiger", Emoji: "🐯", Name: "Tiger"},
	{ID: "mantis", Emoji: "🦗", Name: "Mantis"},
	{ID: "monkey", Emoji: "🐵", Name: "Monkey"},
}
