// dao/mock_store.go
package dao

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/model"
)

// MockStore is a seeded in-memory dataset used when MongoDB is unreachable
// or unconfigured. It implements every DAO interface so the rest of the
// service is unaware of the fallback.
type MockStore struct {
	mu           sync.RWMutex
	patients     map[string]*model.Patient
	appointments map[string]*model.Appointment
	team         map[string]*model.TeamMember
	campaigns    map[string]*model.Campaign
	users        map[string]*model.User
}

var (
	_ IPatientDAO     = (*MockStore)(nil)
	_ IAppointmentDAO = (*MockStore)(nil)
	_ ITeamDAO        = (*MockStore)(nil)
	_ ICampaignDAO    = (*MockStore)(nil)
	_ IUserDAO        = (*MockStore)(nil)
)

func NewMockStore() *MockStore {
	s := &MockStore{
		patients:     make(map[string]*model.Patient),
		appointments: make(map[string]*model.Appointment),
		team:         make(map[string]*model.TeamMember),
		campaigns:    make(map[string]*model.Campaign),
		users:        make(map[string]*model.User),
	}
	s.seed()
	return s
}

func (s *MockStore) seed() {
	now := time.Now()

	doctor := &model.TeamMember{
		ID:        uuid.New().String(),
		Name:      "Elena Vasquez",
		Initials:  model.DeriveInitials("Elena Vasquez"),
		Role:      "doctor",
		Email:     "elena@pingwise.app",
		Specialty: "General Medicine",
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.team[doctor.ID] = doctor

	patient := &model.Patient{
		ID:        uuid.New().String(),
		Name:      "Sample Patient",
		Email:     "sample.patient@example.com",
		Phone:     "+1-555-0100",
		Gender:    "female",
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.patients[patient.ID] = patient

	appointment := &model.Appointment{
		ID:           uuid.New().String(),
		PatientID:    patient.ID,
		TeamMemberID: doctor.ID,
		Title:        "Annual check-up",
		Status:       model.AppointmentScheduled,
		StartsAt:     now.Add(2 * time.Hour),
		DurationMins: 30,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.appointments[appointment.ID] = appointment

	campaign := &model.Campaign{
		ID:          uuid.New().String(),
		Name:        "Spring wellness reminders",
		Channel:     "email",
		Status:      model.CampaignActive,
		BudgetCents: 50000,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.campaigns[campaign.ID] = campaign
}

// Patients

func (s *MockStore) CreatePatient(ctx context.Context, patient model.Patient) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	p := patient
	s.patients[p.ID] = &p
	return p.ID, nil
}

func (s *MockStore) UpdatePatient(ctx context.Context, patient model.Patient) (*model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.patients[patient.ID]
	if !ok {
		return nil, pw_errors.ErrPatientNotFound
	}
	patient.CreatedAt = existing.CreatedAt
	p := patient
	s.patients[p.ID] = &p
	out := p
	return &out, nil
}

func (s *MockStore) DeletePatient(ctx context.Context, patientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.patients[patientID]; !ok {
		return pw_errors.ErrPatientNotFound
	}
	delete(s.patients, patientID)
	return nil
}

func (s *MockStore) GetPatient(ctx context.Context, patientID string) (*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients[patientID]
	if !ok {
		return nil, pw_errors.ErrPatientNotFound
	}
	out := *p
	return &out, nil
}

func (s *MockStore) ListPatients(ctx context.Context, limit, offset int) ([]*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*model.Patient, 0, len(s.patients))
	for _, p := range s.patients {
		out := *p
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (s *MockStore) ListRecentPatients(ctx context.Context, limit int) ([]*model.Patient, error) {
	return s.ListPatients(ctx, limit, 0)
}

func (s *MockStore) SearchPatients(ctx context.Context, criteria model.PatientSearchCriteria) ([]*model.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []*model.Patient
	for _, p := range s.patients {
		if criteria.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(criteria.Name)) {
			continue
		}
		if criteria.Email != "" && p.Email != criteria.Email {
			continue
		}
		if criteria.Phone != "" && p.Phone != criteria.Phone {
			continue
		}
		if criteria.Gender != "" && p.Gender != criteria.Gender {
			continue
		}
		if criteria.FromDate != nil && p.CreatedAt.Before(*criteria.FromDate) {
			continue
		}
		if criteria.ToDate != nil && !p.CreatedAt.Before(*criteria.ToDate) {
			continue
		}
		out := *p
		matched = append(matched, &out)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, criteria.Limit, criteria.Offset), nil
}

func (s *MockStore) CountPatients(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.patients)), nil
}

// Appointments

func (s *MockStore) CreateAppointment(ctx context.Context, appointment model.Appointment) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}
	a := appointment
	s.appointments[a.ID] = &a
	return a.ID, nil
}

func (s *MockStore) UpdateAppointment(ctx context.Context, appointment model.Appointment) (*model.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.appointments[appointment.ID]
	if !ok {
		return nil, pw_errors.ErrAppointmentNotFound
	}
	appointment.CreatedAt = existing.CreatedAt
	a := appointment
	s.appointments[a.ID] = &a
	out := a
	return &out, nil
}

func (s *MockStore) DeleteAppointment(ctx context.Context, appointmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[appointmentID]; !ok {
		return pw_errors.ErrAppointmentNotFound
	}
	delete(s.appointments, appointmentID)
	return nil
}

func (s *MockStore) GetAppointment(ctx context.Context, appointmentID string) (*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments[appointmentID]
	if !ok {
		return nil, pw_errors.ErrAppointmentNotFound
	}
	out := *a
	return &out, nil
}

func (s *MockStore) ListAppointments(ctx context.Context, limit, offset int) ([]*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*model.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out := *a
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartsAt.After(all[j].StartsAt) })
	return paginate(all, limit, offset), nil
}

func (s *MockStore) ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Appointment
	for _, a := range s.appointments {
		if !a.StartsAt.Before(from) && a.StartsAt.Before(to) {
			out := *a
			result = append(result, &out)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartsAt.Before(result[j].StartsAt) })
	return result, nil
}

func (s *MockStore) CountAppointmentsByPatient(ctx context.Context, patientID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			count++
		}
	}
	return count, nil
}

func (s *MockStore) CountAppointments(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.appointments)), nil
}

func (s *MockStore) StatusBreakdown(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	breakdown := make(map[string]int64)
	for _, a := range s.appointments {
		breakdown[a.Status]++
	}
	return breakdown, nil
}

// Team members

func (s *MockStore) CreateTeamMember(ctx context.Context, member model.TeamMember) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	m := member
	s.team[m.ID] = &m
	return m.ID, nil
}

func (s *MockStore) UpdateTeamMember(ctx context.Context, member model.TeamMember) (*model.TeamMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.team[member.ID]
	if !ok {
		return nil, pw_errors.ErrTeamMemberNotFound
	}
	member.CreatedAt = existing.CreatedAt
	m := member
	s.team[m.ID] = &m
	out := m
	return &out, nil
}

func (s *MockStore) DeleteTeamMember(ctx context.Context, memberID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.team[memberID]; !ok {
		return pw_errors.ErrTeamMemberNotFound
	}
	delete(s.team, memberID)
	return nil
}

func (s *MockStore) GetTeamMember(ctx context.Context, memberID string) (*model.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.team[memberID]
	if !ok {
		return nil, pw_errors.ErrTeamMemberNotFound
	}
	out := *m
	return &out, nil
}

func (s *MockStore) ListTeamMembers(ctx context.Context, limit, offset int) ([]*model.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*model.TeamMember, 0, len(s.team))
	for _, m := range s.team {
		out := *m
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (s *MockStore) CountTeamMembers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.team)), nil
}

// Campaigns

func (s *MockStore) CreateCampaign(ctx context.Context, campaign model.Campaign) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}
	c := campaign
	s.campaigns[c.ID] = &c
	return c.ID, nil
}

func (s *MockStore) UpdateCampaign(ctx context.Context, campaign model.Campaign) (*model.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.campaigns[campaign.ID]
	if !ok {
		return nil, pw_errors.ErrCampaignNotFound
	}
	campaign.CreatedAt = existing.CreatedAt
	c := campaign
	s.campaigns[c.ID] = &c
	out := c
	return &out, nil
}

func (s *MockStore) DeleteCampaign(ctx context.Context, campaignID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[campaignID]; !ok {
		return pw_errors.ErrCampaignNotFound
	}
	delete(s.campaigns, campaignID)
	return nil
}

func (s *MockStore) GetCampaign(ctx context.Context, campaignID string) (*model.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[campaignID]
	if !ok {
		return nil, pw_errors.ErrCampaignNotFound
	}
	out := *c
	return &out, nil
}

func (s *MockStore) ListCampaigns(ctx context.Context, limit, offset int) ([]*model.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*model.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		out := *c
		all = append(all, &out)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (s *MockStore) CountCampaigns(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.campaigns)), nil
}

// Users

func (s *MockStore) CreateUser(ctx context.Context, user model.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return "", pw_errors.ErrUserConflict
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	u := user
	s.users[u.ID] = &u
	return u.ID, nil
}

func (s *MockStore) GetUser(ctx context.Context, userID string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, pw_errors.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *MockStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, pw_errors.ErrUserNotFound
}

func paginate[T any](all []*T, limit, offset int) []*T {
	if offset >= len(all) {
		return []*T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
