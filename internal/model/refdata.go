package model

// Reference data: countries, cities, themes and skills. These rows are not
// managed over the API - they are synced from the refdata file and only read
// for existence checks, name lookup and sorting.

type Country struct {
	ID   uint   `gorm:"primarykey" json:"id" yaml:"id"`
	Name string `gorm:"size:255;not null" json:"name" yaml:"name"`
}

type City struct {
	ID        uint   `gorm:"primarykey" json:"id" yaml:"id"`
	Name      string `gorm:"size:255;not null" json:"name" yaml:"name"`
	CountryID uint   `gorm:"not null;index" json:"countryId" yaml:"countryId"`
}

type Theme struct {
	ID   uint   `gorm:"primarykey" json:"id" yaml:"id"`
	Name string `gorm:"size:255;not null" json:"name" yaml:"name"`
}

type Skill struct {
	ID   uint   `gorm:"primarykey" json:"id" yaml:"id"`
	Name string `gorm:"size:255;not null" json:"name" yaml:"name"`
}

// RefData is the on-disk shape of the refdata file.
type RefData struct {
	Countries []*Country `yaml:"countries"`
	Cities    []*City    `yaml:"cities"`
	Themes    []*Theme   `yaml:"themes"`
	Skills    []*Skill   `yaml:"skills"`
}
