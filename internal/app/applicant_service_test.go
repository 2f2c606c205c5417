package app

import (
	"context"
	"testing"
	"time"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/applicant"
)

func newApplicantServiceForTest() (*ApplicantService, *fakeApplicantRepository, *fakeJobRepository) {
	jobs := newFakeJobRepository()
	repo := newFakeApplicantRepository(jobs)
	return NewApplicantService(repo, jobs), repo, jobs
}

func TestApplicantServiceApply(t *testing.T) {
	svc, _, jobs := newApplicantServiceForTest()
	posting, err := jobs.Create(context.Background(), validJob(common.NewUUID()))
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}
	employeeID := common.NewUUID()

	created, err := svc.Apply(context.Background(), posting.ID, employeeID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if created.Status != applicant.StatusPending {
		t.Fatalf("new application must be pending, got %v", created.Status)
	}
	if created.UserID != employeeID || created.JobID != posting.ID {
		t.Fatal("application must reference the employee and the job")
	}
}

func TestApplicantServiceApplyTwiceConflict(t *testing.T) {
	svc, repo, jobs := newApplicantServiceForTest()
	posting, err := jobs.Create(context.Background(), validJob(common.NewUUID()))
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}
	employeeID := common.NewUUID()

	if _, err := svc.Apply(context.Background(), posting.ID, employeeID); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	if _, err := svc.Apply(context.Background(), posting.ID, employeeID); !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict on second apply, got %v", err)
	}
	if len(repo.applicants) != 1 {
		t.Fatalf("duplicate apply must not create a second row, got %d", len(repo.applicants))
	}
}

func TestApplicantServiceApplyFilledJob(t *testing.T) {
	svc, _, jobs := newApplicantServiceForTest()
	ownerID := common.NewUUID()
	posting, err := jobs.Create(context.Background(), validJob(ownerID))
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}
	if err := jobs.MarkFilled(context.Background(), posting.ID, ownerID); err != nil {
		t.Fatalf("MarkFilled: %v", err)
	}

	if _, err := svc.Apply(context.Background(), posting.ID, common.NewUUID()); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for a filled job, got %v", err)
	}
}

func TestApplicantServiceApplyPastLastDate(t *testing.T) {
	svc, _, jobs := newApplicantServiceForTest()
	expired := validJob(common.NewUUID())
	expired.LastDate = time.Now().UTC().AddDate(0, 0, -2)
	posting, err := jobs.Create(context.Background(), expired)
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}

	if _, err := svc.Apply(context.Background(), posting.ID, common.NewUUID()); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error past the last date, got %v", err)
	}
}

func TestApplicantServiceApplyUnknownJob(t *testing.T) {
	svc, _, _ := newApplicantServiceForTest()
	if _, err := svc.Apply(context.Background(), common.NewUUID(), common.NewUUID()); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApplicantServiceListForJobWrongOwner(t *testing.T) {
	svc, _, jobs := newApplicantServiceForTest()
	posting, err := jobs.Create(context.Background(), validJob(common.NewUUID()))
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}

	if _, err := svc.ListForJob(context.Background(), posting.ID, common.NewUUID()); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("another employer's job must read as not found, got %v", err)
	}
}

func TestApplicantServiceSendResponse(t *testing.T) {
	svc, _, jobs := newApplicantServiceForTest()
	ownerID := common.NewUUID()
	posting, err := jobs.Create(context.Background(), validJob(ownerID))
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}
	created, err := svc.Apply(context.Background(), posting.ID, common.NewUUID())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	result, err := svc.SendResponse(context.Background(), created.ID, ownerID, applicant.StatusAccepted, "welcome aboard")
	if err != nil {
		t.Fatalf("SendResponse: %v", err)
	}
	if result.AlreadySent {
		t.Fatal("first response must not read as already sent")
	}
	if result.Applicant.Status != applicant.StatusAccepted || result.Applicant.Comment != "welcome aboard" {
		t.Fatalf("unexpected applicant state: %+v", result.Applicant)
	}

	repeat, err := svc.SendResponse(context.Background(), created.ID, ownerID, applicant.StatusAccepted, "again")
	if err != nil {
		t.Fatalf("repeated SendResponse: %v", err)
	}
	if !repeat.AlreadySent {
		t.Fatal("repeating the same status must read as already sent")
	}
	if repeat.Applicant.Comment != "welcome aboard" {
		t.Fatalf("already-sent response must not change state, got %q", repeat.Applicant.Comment)
	}
}

func TestApplicantServiceSendResponseUnknownStatus(t *testing.T) {
	svc, _, _ := newApplicantServiceForTest()
	if _, err := svc.SendResponse(context.Background(), common.NewUUID(), common.NewUUID(), applicant.Status(9), ""); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestApplicantServiceSendResponseWrongOwner(t *testing.T) {
	svc, _, jobs := newApplicantServiceForTest()
	posting, err := jobs.Create(context.Background(), validJob(common.NewUUID()))
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}
	created, err := svc.Apply(context.Background(), posting.ID, common.NewUUID())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if _, err := svc.SendResponse(context.Background(), created.ID, common.NewUUID(), applicant.StatusRejected, ""); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("another employer's applicant must read as not found, got %v", err)
	}
}

func TestApplicantServiceListByEmployeeStatusFilter(t *testing.T) {
	svc, _, jobs := newApplicantServiceForTest()
	ownerID := common.NewUUID()
	employeeID := common.NewUUID()

	first, err := jobs.Create(context.Background(), validJob(ownerID))
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}
	second, err := jobs.Create(context.Background(), validJob(ownerID))
	if err != nil {
		t.Fatalf("Create job: %v", err)
	}

	accepted, err := svc.Apply(context.Background(), first.ID, employeeID)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := svc.Apply(context.Background(), second.ID, employeeID); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := svc.SendResponse(context.Background(), accepted.ID, ownerID, applicant.StatusAccepted, ""); err != nil {
		t.Fatalf("SendResponse: %v", err)
	}

	status := applicant.StatusAccepted
	items, err := svc.ListByEmployee(context.Background(), employeeID, &status)
	if err != nil {
		t.Fatalf("ListByEmployee: %v", err)
	}
	if len(items) != 1 || items[0].ID != accepted.ID {
		t.Fatalf("expected only the accepted application, got %+v", items)
	}
}
