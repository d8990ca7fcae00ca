package model

// Genome is a row of genome: one genotyped SNP.
type Genome struct {
	ID         int64  `gorm:"primaryKey"`
	RsidNumber string `gorm:"type:varchar(30)"`
	Chromosome int
	Genotype   string `gorm:"type:varchar(2)"`
}

func (Genome) TableName() string { return "genome" }

func (g *Genome) AsMap() map[string]any {
	return map[string]any{
		"id":          g.ID,
		"rsid_number": g.RsidNumber,
		"chromosome":  g.Chromosome,
		"genotype":    g.Genotype,
	}
}
