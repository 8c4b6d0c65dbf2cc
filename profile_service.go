package main

import (
	"pb01/models"
	"pb01/pkg/profilesync"

	"gorm.io/gorm"
)

// savePayload is the full editor submission: the parent fields plus one
// packet per child section.
type savePayload struct {
	Master      models.Profile                          `json:"master"`
	Education   profilesync.Packet[*models.Education]   `json:"education"`
	Work        profilesync.Packet[*models.Work]        `json:"work"`
	Language    profilesync.Packet[*models.Language]    `json:"language"`
	Skill       profilesync.Packet[*models.Skill]       `json:"skill"`
	Certificate profilesync.Packet[*models.Certificate] `json:"certificate"`
	Project     profilesync.Packet[*models.Project]     `json:"project"`
	Volunteer   profilesync.Packet[*models.Volunteer]   `json:"volunteer"`
	SocialLink  profilesync.Packet[*models.SocialLink]  `json:"socialLink"`
}

// saveResult echoes the post-save row lists so the client can thread the
// assigned ids back into its local state before the next edit cycle.
type saveResult struct {
	Message     string                `json:"message"`
	Education   []*models.Education   `json:"education"`
	Work        []*models.Work        `json:"work"`
	Language    []*models.Language    `json:"language"`
	Skill       []*models.Skill       `json:"skill"`
	Certificate []*models.Certificate `json:"certificate"`
	Project     []*models.Project     `json:"project"`
	Volunteer   []*models.Volunteer   `json:"volunteer"`
	SocialLink  []*models.SocialLink  `json:"socialLink"`
}

// portfolioView is the aggregate read shape.
type portfolioView struct {
	Master      models.Profile        `json:"master"`
	Education   []*models.Education   `json:"education"`
	Work        []*models.Work        `json:"work"`
	Language    []*models.Language    `json:"language"`
	Skill       []*models.Skill       `json:"skill"`
	Certificate []*models.Certificate `json:"certificate"`
	Project     []*models.Project     `json:"project"`
	Volunteer   []*models.Volunteer   `json:"volunteer"`
	SocialLink  []*models.SocialLink  `json:"socialLink"`
}

// ValidationError carries the violated rule text; handlers answer it with
// a 400 and write nothing.
type ValidationError struct {
	Rule string
}

func (e *ValidationError) Error() string { return e.Rule }

const (
	ruleEndBeforeStart    = "End Month must be later or equal to Start Month"
	ruleExpiryBeforeIssue = "Expiry Date must be later or equal to Issue Date"
)

// before reports whether date a sorts strictly before b; empty values never
// violate anything. Both sides are normalized first so "2024-05" and
// "2024-05-01" compare equal.
func before(a, b models.Date) bool {
	na, nb := profilesync.NormalizeDate(string(a)), profilesync.NormalizeDate(string(b))
	if na == "" || nb == "" {
		return false
	}
	return na < nb
}

// validatePayload re-checks cross-field date ordering for every entity with
// temporal bounds. The client's isValid flags are advisory only; this is
// the authoritative check. It also clears end_month on rows flagged as
// ongoing, so the flag wins over a stale end value.
func validatePayload(p *savePayload) error {
	for _, e := range p.Education.Upserts {
		if before(e.EndMonth, e.StartMonth) {
			return &ValidationError{Rule: ruleEndBeforeStart}
		}
	}
	for _, w := range p.Work.Upserts {
		if w.IsPresent {
			w.EndMonth = ""
			continue
		}
		if before(w.EndMonth, w.StartMonth) {
			return &ValidationError{Rule: ruleEndBeforeStart}
		}
	}
	for _, v := range p.Volunteer.Upserts {
		if v.IsPresent {
			v.EndMonth = ""
			continue
		}
		if before(v.EndMonth, v.StartMonth) {
			return &ValidationError{Rule: ruleEndBeforeStart}
		}
	}
	for _, cert := range p.Certificate.Upserts {
		if before(cert.ExpiryDate, cert.IssueDate) {
			return &ValidationError{Rule: ruleExpiryBeforeIssue}
		}
	}
	return nil
}

// savePortfolio applies one editor submission atomically: parent update,
// explicit deletes, then one synchronization pass per entity, all inside a
// single transaction. Nothing is written when validation fails, and a
// failure anywhere rolls the whole submission back.
func savePortfolio(profileID uint, p *savePayload) (*saveResult, error) {
	if err := validatePayload(p); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		m := p.Master
		res := tx.Exec(
			`UPDATE profiles
			 SET pf_name=$1, name=$2, job_title=$3, tagline=$4, location=$5,
			     introduction=$6, photo_path=$7, is_public=$8,
			     contact=$9, updated_at=NOW()
			 WHERE id=$10`,
			m.PfName, m.Name, m.JobTitle, m.Tagline, m.Location,
			m.Introduction, m.PhotoPath, m.IsPublic, m.Contact, profileID,
		)
		if res.Error != nil {
			return res.Error
		}

		deletes := []struct {
			table string
			ids   []uint
		}{
			{"pf_education", p.Education.DeleteIDs},
			{"pf_work_experience", p.Work.DeleteIDs},
			{"pf_language", p.Language.DeleteIDs},
			{"pf_skill", p.Skill.DeleteIDs},
			{"pf_certificate", p.Certificate.DeleteIDs},
			{"pf_project", p.Project.DeleteIDs},
			{"pf_volunteer_experience", p.Volunteer.DeleteIDs},
			{"pf_social_link", p.SocialLink.DeleteIDs},
		}
		for _, d := range deletes {
			if err := profilesync.DeleteIDs(tx, d.table, d.ids, profileID); err != nil {
				return err
			}
		}

		var err error
		if p.Education.Upserts, err = profilesync.Apply(tx, models.EducationCrud, p.Education.Upserts, profileID); err != nil {
			return err
		}
		if p.Work.Upserts, err = profilesync.Apply(tx, models.WorkCrud, p.Work.Upserts, profileID); err != nil {
			return err
		}
		if p.Language.Upserts, err = profilesync.Apply(tx, models.LanguageCrud, p.Language.Upserts, profileID); err != nil {
			return err
		}
		if p.Skill.Upserts, err = profilesync.Apply(tx, models.SkillCrud, p.Skill.Upserts, profileID); err != nil {
			return err
		}
		if p.Certificate.Upserts, err = profilesync.Apply(tx, models.CertificateCrud, p.Certificate.Upserts, profileID); err != nil {
			return err
		}
		if p.Project.Upserts, err = profilesync.Apply(tx, models.ProjectCrud, p.Project.Upserts, profileID); err != nil {
			return err
		}
		if p.Volunteer.Upserts, err = profilesync.Apply(tx, models.VolunteerCrud, p.Volunteer.Upserts, profileID); err != nil {
			return err
		}
		if p.SocialLink.Upserts, err = profilesync.Apply(tx, models.SocialLinkCrud, p.SocialLink.Upserts, profileID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &saveResult{
		Message:     "Profile saved",
		Education:   p.Education.Upserts,
		Work:        p.Work.Upserts,
		Language:    p.Language.Upserts,
		Skill:       p.Skill.Upserts,
		Certificate: p.Certificate.Upserts,
		Project:     p.Project.Upserts,
		Volunteer:   p.Volunteer.Upserts,
		SocialLink:  p.SocialLink.Upserts,
	}, nil
}

// loadPortfolio assembles the parent row plus all eight child collections.
// publicOnly additionally requires is_public; soft-deleted profiles are
// invisible on every path. Child ordering: entries with a timeline read
// newest-first, flat lists keep insertion order.
func loadPortfolio(profileID uint, publicOnly bool) (*portfolioView, error) {
	q := db.Where("id = ? AND is_deleted = false", profileID)
	if publicOnly {
		q = q.Where("is_public = true")
	}
	view := &portfolioView{}
	if err := q.First(&view.Master).Error; err != nil {
		return nil, err
	}

	children := []struct {
		dest  any
		order string
	}{
		{&view.Education, "start_month DESC"},
		{&view.Work, "start_month DESC"},
		{&view.Language, "id"},
		{&view.Skill, "id"},
		{&view.Certificate, "issue_date DESC"},
		{&view.Project, "id"},
		{&view.Volunteer, "start_month DESC"},
		{&view.SocialLink, "id"},
	}
	for _, ch := range children {
		if err := db.Where("profile_id = ?", profileID).Order(ch.order).Find(ch.dest).Error; err != nil {
			return nil, err
		}
	}
	return view, nil
}
