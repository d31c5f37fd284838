package web

import (
	"github.com/octabyte/emaar-web/enums"
	"github.com/octabyte/emaar-web/models"
	"github.com/octabyte/emaar-web/utils"
)

// demoProjects are shown when the API cannot be reached, so the public
// pages never come up empty.
var demoProjects = []models.Project{
	{
		ID:           1,
		Name:         models.Localized{Ar: "ترميم جامع النوري الكبير", En: "Great Mosque of al-Nuri restoration"},
		Description:  models.Localized{Ar: "إعادة بناء قاعة الصلاة والمئذنة الحدباء.", En: "Rebuilding the prayer hall and the leaning minaret."},
		Status:       enums.ProjectActive,
		TargetAmount: 250000000,
		RaisedAmount: 162500000,
		Currency:     "IQD",
		DonorsCount:  1240,
	},
	{
		ID:           2,
		Name:         models.Localized{Ar: "إعادة تأهيل مسجد النبي يونس", En: "Nabi Yunus Mosque rehabilitation"},
		Description:  models.Localized{Ar: "تدعيم الأساسات وترميم القبة.", En: "Strengthening the foundations and restoring the dome."},
		Status:       enums.ProjectActive,
		TargetAmount: 180000000,
		RaisedAmount: 45000000,
		Currency:     "IQD",
		DonorsCount:  386,
	},
	{
		ID:           3,
		Name:         models.Localized{Ar: "ترميم جامع الخضر", En: "Al-Khidr Mosque restoration"},
		Description:  models.Localized{Ar: "ترميم الواجهات الحجرية والأبواب الخشبية.", En: "Restoring the stone facades and wooden doors."},
		Status:       enums.ProjectCompleted,
		TargetAmount: 60000000,
		RaisedAmount: 60000000,
		Currency:     "IQD",
		DonorsCount:  512,
	},
	{
		ID:           4,
		Name:         models.Localized{Ar: "تأهيل مسجد حي الزنجيلي", En: "Zanjili neighborhood mosque"},
		Description:  models.Localized{Ar: "إعادة الكهرباء والمياه وتجهيز قاعة الصلاة.", En: "Restoring power and water and refitting the prayer hall."},
		Status:       enums.ProjectPaused,
		TargetAmount: 35000000,
		Currency:     "IQD",
	},
}

func demoProject(id uint64) (models.Project, bool) {
	for _, p := range demoProjects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// FilterProjects keeps projects with the given status (empty matches all)
// whose Arabic or English name contains query, ignoring case.
func FilterProjects(projects []models.Project, status enums.ProjectStatus, query string) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if status != "" && p.Status != status {
			continue
		}
		if !utils.ContainsFold(p.Name.Ar, query) && !utils.ContainsFold(p.Name.En, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// paginate slices projects the way the API would, so demo content pages
// like live data.
func paginate(projects []models.Project, page, perPage int) models.Envelope[[]models.Project] {
	total := len(projects)
	last := (total + perPage - 1) / perPage
	if last == 0 {
		last = 1
	}
	if page > last {
		page = last
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	return models.Envelope[[]models.Project]{
		Status: true,
		Data:   projects[start:end],
		Meta:   models.Meta{CurrentPage: page, LastPage: last, PerPage: perPage, Total: total},
	}
}
