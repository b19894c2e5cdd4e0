package service

import (
	"context"
	"testing"
	"time"

	"gigmarket/internal/common"
	"gigmarket/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jobInput() *entity.CreateJobInput {
	category := int64(1)
	return &entity.CreateJobInput{
		Title:        "Paint the fence",
		Description:  "About 20 meters",
		CategoryId:   &category,
		SkillIds:     []int64{2},
		LocationType: common.LocationOnsite,
		City:         "Austin",
		State:        "TX",
		StartDate:    testNow.AddDate(0, 0, 3),
		Urgency:      common.UrgencyLow,
		BudgetMin:    decimal.NewFromInt(100),
		BudgetMax:    decimal.NewFromInt(300),
	}
}

func TestJobService_CreateJob(t *testing.T) {
	ctx := context.Background()
	services, store := newTestServices(t)

	employer := store.addUser(common.Employer, "Erin", "Boss")
	seeker := store.addUser(common.JobSeeker, "Will", "Smith")

	t.Run("defaults to open with one worker", func(t *testing.T) {
		job, err := services.Job.CreateJob(ctx, principal(employer, common.Employer), jobInput())
		require.NoError(t, err)

		assert.Equal(t, common.JobOpen, job.Status)
		assert.Equal(t, 1, job.NumberOfWorkers)
		assert.Equal(t, employer, job.EmployerId)
		assert.Equal(t, testNow, job.PostedDate)
		assert.Equal(t, []int64{2}, job.SkillIds)
	})

	t.Run("job seekers can't post", func(t *testing.T) {
		_, err := services.Job.CreateJob(ctx, principal(seeker, common.JobSeeker), jobInput())
		assert.ErrorIs(t, err, ErrNotEmployer)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(in *entity.CreateJobInput)
			want   error
		}{
			{"completed status", func(in *entity.CreateJobInput) { in.Status = common.JobCompleted }, ErrInvalidJobStatus},
			{"negative workers", func(in *entity.CreateJobInput) { in.NumberOfWorkers = -2 }, ErrInvalidWorkers},
			{"negative budget", func(in *entity.CreateJobInput) { in.BudgetMin = decimal.NewFromInt(-1) }, ErrInvalidBudget},
			{"unknown skill", func(in *entity.CreateJobInput) { in.SkillIds = []int64{99} }, ErrInvalidReference},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				in := jobInput()
				tc.mutate(in)

				_, err := services.Job.CreateJob(ctx, principal(employer, common.Employer), in)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})
}

func TestJobService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	services, store := newTestServices(t)

	employer := store.addUser(common.Employer, "Erin", "Boss")
	stranger := store.addUser(common.Employer, "Sam", "Other")
	owner := principal(employer, common.Employer)

	t.Run("publish a draft", func(t *testing.T) {
		id := store.addJob(employer, common.JobDraft, 1)

		job, err := services.Job.PublishJob(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, common.JobOpen, job.Status)

		_, err = services.Job.PublishJob(ctx, owner, id)
		assert.ErrorIs(t, err, ErrJobNotDraft)
	})

	t.Run("complete an in-progress job", func(t *testing.T) {
		id := store.addJob(employer, common.JobInProgress, 1)

		job, err := services.Job.CompleteJob(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, common.JobCompleted, job.Status)
		require.NotNil(t, job.CompletionDate)
		assert.Equal(t, testNow, *job.CompletionDate)
		assert.Contains(t, store.eventTypes(), common.EventJobCompleted)

		_, err = services.Job.CancelJob(ctx, owner, id)
		assert.ErrorIs(t, err, ErrJobClosed)
	})

	t.Run("open job can't be completed", func(t *testing.T) {
		id := store.addJob(employer, common.JobOpen, 1)

		_, err := services.Job.CompleteJob(ctx, owner, id)
		assert.ErrorIs(t, err, ErrJobNotInProgress)
		assert.Equal(t, KindInvalidState, KindOf(err))
	})

	t.Run("cancel keeps accepted bids", func(t *testing.T) {
		id := store.addJob(employer, common.JobInProgress, 1)
		bid := store.addBid(id, store.addUser(common.JobSeeker, "W", ""), 100, common.BidAccepted)

		job, err := services.Job.CancelJob(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, common.JobCancelled, job.Status)
		assert.Equal(t, common.BidAccepted, store.state.bids[bid].Status)
		assert.Contains(t, store.eventTypes(), common.EventJobCancelled)
	})

	t.Run("only the owner moves a job", func(t *testing.T) {
		id := store.addJob(employer, common.JobOpen, 1)

		_, err := services.Job.CancelJob(ctx, principal(stranger, common.Employer), id)
		assert.ErrorIs(t, err, ErrNotJobOwner)
		assert.Equal(t, common.JobOpen, store.state.jobs[id].Status)
	})
}

func TestJobService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	services, store := newTestServices(t)

	employer := store.addUser(common.Employer, "Erin", "Boss")
	owner := principal(employer, common.Employer)

	t.Run("update fields", func(t *testing.T) {
		id := store.addJob(employer, common.JobOpen, 1)
		title := "Fix the kitchen sink"

		job, err := services.Job.UpdateJob(ctx, owner, id, &entity.UpdateJobInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, job.Title)
	})

	t.Run("workers below accepted count", func(t *testing.T) {
		id := store.addJob(employer, common.JobInProgress, 2)
		store.addBid(id, store.addUser(common.JobSeeker, "A", ""), 100, common.BidAccepted)
		store.addBid(id, store.addUser(common.JobSeeker, "B", ""), 100, common.BidAccepted)
		one := 1

		_, err := services.Job.UpdateJob(ctx, owner, id, &entity.UpdateJobInput{NumberOfWorkers: &one})
		assert.ErrorIs(t, err, ErrBidLimitReached)
	})

	t.Run("closed job can't be edited", func(t *testing.T) {
		id := store.addJob(employer, common.JobCompleted, 1)
		title := "x"

		_, err := services.Job.UpdateJob(ctx, owner, id, &entity.UpdateJobInput{Title: &title})
		assert.ErrorIs(t, err, ErrJobClosed)
	})

	t.Run("delete an open job", func(t *testing.T) {
		id := store.addJob(employer, common.JobOpen, 1)
		store.addBid(id, store.addUser(common.JobSeeker, "A", ""), 100, common.BidPending)

		require.NoError(t, services.Job.DeleteJob(ctx, owner, id))
		assert.NotContains(t, store.state.jobs, id)

		err := services.Job.DeleteJob(ctx, owner, id)
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("in-progress job can't be deleted", func(t *testing.T) {
		id := store.addJob(employer, common.JobInProgress, 1)

		err := services.Job.DeleteJob(ctx, owner, id)
		assert.ErrorIs(t, err, ErrJobHasBids)
	})
}

func TestJobService_ViewJob(t *testing.T) {
	ctx := context.Background()
	services, store := newTestServices(t)

	employer := store.addUser(common.Employer, "Erin", "Boss")
	worker := store.addUser(common.JobSeeker, "Will", "Smith")
	id := store.addJob(employer, common.JobOpen, 1)
	store.addBid(id, worker, 90, common.BidPending)
	store.addBid(id, store.addUser(common.JobSeeker, "A", ""), 70, common.BidPending)
	store.addBid(id, store.addUser(common.JobSeeker, "B", ""), 10, common.BidRejected)
	me := principal(worker, common.JobSeeker)

	first, err := services.Job.ViewJob(ctx, me, id)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ViewCount)
	assert.Equal(t, 3, first.BidsCount)
	require.NotNil(t, first.LowestBid)
	assert.True(t, decimal.NewFromInt(70).Equal(*first.LowestBid))
	assert.True(t, first.UserHasBid)
	require.NotNil(t, first.UserBid)
	assert.Equal(t, worker, first.UserBid.WorkerId)
	assert.False(t, first.IsSaved)

	_, _, err = services.Job.SaveJob(ctx, me, id)
	require.NoError(t, err)

	second, err := services.Job.ViewJob(ctx, principal(employer, common.Employer), id)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ViewCount)
	assert.False(t, second.UserHasBid)
	assert.False(t, second.IsSaved)

	third, err := services.Job.ViewJob(ctx, me, id)
	require.NoError(t, err)
	assert.True(t, third.IsSaved)

	_, err = services.Job.ViewJob(ctx, me, uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobService_SavedJobs(t *testing.T) {
	ctx := context.Background()
	services, store := newTestServices(t)

	employer := store.addUser(common.Employer, "Erin", "Boss")
	worker := store.addUser(common.JobSeeker, "Will", "Smith")
	id := store.addJob(employer, common.JobOpen, 1)
	me := principal(worker, common.JobSeeker)

	saved, created, err := services.Job.SaveJob(ctx, me, id)
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := services.Job.SaveJob(ctx, me, id)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, saved.Id, again.Id)

	list, err := services.Job.ListSavedJobs(ctx, me)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].Job.Id)

	require.NoError(t, services.Job.UnsaveJob(ctx, me, id))

	err = services.Job.UnsaveJob(ctx, me, id)
	assert.ErrorIs(t, err, ErrSavedJobNotFound)

	_, _, err = services.Job.SaveJob(ctx, me, uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestJobService_Listings(t *testing.T) {
	ctx := context.Background()
	services, store := newTestServices(t)

	employer := store.addUser(common.Employer, "Erin", "Boss")
	worker := store.addUser(common.JobSeeker, "Will", "Smith")

	cheap := store.addJob(employer, common.JobOpen, 1, func(j *entity.Job) {
		j.BudgetMin = decimal.NewFromInt(10)
		j.BudgetMax = decimal.NewFromInt(40)
		j.City = "Dallas"
	})
	pricey := store.addJob(employer, common.JobOpen, 1, func(j *entity.Job) {
		j.Title = "Cater a wedding"
		j.BudgetMin = decimal.NewFromInt(500)
		j.BudgetMax = decimal.NewFromInt(900)
		j.PostedDate = testNow.Add(-time.Hour)
	})
	store.addJob(employer, common.JobDraft, 1)
	store.addBid(pricey, worker, 600, common.BidPending)

	t.Run("open jobs newest first", func(t *testing.T) {
		jobs, err := services.Job.ListOpenJobs(ctx, &entity.JobFilter{})
		require.NoError(t, err)
		require.Len(t, jobs, 2)
		assert.Equal(t, pricey, jobs[0].Id)
		assert.Equal(t, cheap, jobs[1].Id)
	})

	t.Run("price and search filters", func(t *testing.T) {
		minPrice := decimal.NewFromInt(100)
		jobs, err := services.Job.ListOpenJobs(ctx, &entity.JobFilter{MinPrice: &minPrice})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, pricey, jobs[0].Id)

		jobs, err = services.Job.ListOpenJobs(ctx, &entity.JobFilter{Search: "dallas"})
		require.NoError(t, err)
		require.Len(t, jobs, 1)
		assert.Equal(t, cheap, jobs[0].Id)
	})

	t.Run("my jobs by role", func(t *testing.T) {
		posted, err := services.Job.MyJobs(ctx, principal(employer, common.Employer), "")
		require.NoError(t, err)
		assert.Len(t, posted, 3)

		drafts, err := services.Job.MyJobs(ctx, principal(employer, common.Employer), common.JobDraft)
		require.NoError(t, err)
		assert.Len(t, drafts, 1)

		bidOn, err := services.Job.MyJobs(ctx, principal(worker, common.JobSeeker), "")
		require.NoError(t, err)
		require.Len(t, bidOn, 1)
		assert.Equal(t, pricey, bidOn[0].Id)
	})
}
