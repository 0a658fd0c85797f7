package seed

// Platform schema the alignment battery reads. Nullable columns are pointers.

type User struct {
	ID                 uint    `gorm:"primaryKey"`
	Name               string  `gorm:"size:128"`
	Role               string  `gorm:"size:64;index"`
	Background         *string `gorm:"size:255"`
	Community          *string `gorm:"size:128"`
	Location           *string `gorm:"size:128"`
	AccessibilityNeeds *string `gorm:"size:255"`
	PrivacySettings    *string `gorm:"type:text"`
}

func (User) TableName() string { return "users" }

type Post struct {
	ID            uint    `gorm:"primaryKey"`
	UserID        *uint   `gorm:"index"`
	Title         string  `gorm:"size:255"`
	Content       string  `gorm:"type:text"`
	ContentType   *string `gorm:"size:64;index"`
	ContentFormat *string `gorm:"size:32"`
	Metadata      *string `gorm:"type:text"`
	Status        string  `gorm:"size:32"`
	AccessLevel   *string `gorm:"size:32"`
	Tags          *string `gorm:"size:255"`
	Category      *string `gorm:"size:64"`
	Keywords      *string `gorm:"size:255"`
}

func (Post) TableName() string { return "posts" }

type UserPermission struct {
	ID             uint   `gorm:"primaryKey"`
	UserID         uint   `gorm:"index"`
	PermissionType string `gorm:"size:64"`
}

func (UserPermission) TableName() string { return "user_permissions" }

type UserRelationship struct {
	ID               uint   `gorm:"primaryKey"`
	MentorID         uint   `gorm:"index"`
	MenteeID         uint   `gorm:"index"`
	RelationshipType string `gorm:"size:32"`
}

func (UserRelationship) TableName() string { return "user_relationships" }

type Interaction struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"index"`
	InteractionType string `gorm:"size:64"`
}

func (Interaction) TableName() string { return "interactions" }

type Group struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:128"`
	GroupType string `gorm:"size:32"`
}

// TableName is a reserved word in MySQL 8; gorm quotes it.
func (Group) TableName() string { return "groups" }

type UserPreference struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"index"`
	PreferenceKey   string `gorm:"size:64"`
	PreferenceValue string `gorm:"size:255"`
}

func (UserPreference) TableName() string { return "user_preferences" }

type UserProgress struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index"`
	ProgressType string `gorm:"size:32"`
	Subject      string `gorm:"size:128"`
}

func (UserProgress) TableName() string { return "user_progress" }

type UserAchievement struct {
	ID              uint    `gorm:"primaryKey"`
	UserID          uint    `gorm:"index"`
	AchievementType *string `gorm:"size:64"`
}

func (UserAchievement) TableName() string { return "user_achievements" }

// Models lists every table in creation order.
func Models() []any {
	return []any{
		&User{},
		&Post{},
		&UserPermission{},
		&UserRelationship{},
		&Interaction{},
		&Group{},
		&UserPreference{},
		&UserProgress{},
		&UserAchievement{},
	}
}
