package usecase

import (
	"strings"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

const (
	defaultLeadSource   = "1111"
	defaultIntakeSource = "Tax Intake"
	defaultResumeURL    = "https://app.automatedtaxcredits.com/estimator"
	defaultPickList     = "Ankur List"
)

func MapInsertDeal(in InsertDealRequest) entity.DealFields {
	return entity.DealFields{
		"Deal_Name":           in.ClientName.Value,
		"Stage":               entity.StagePrequalStarted,
		"Email":               in.Email.Value,
		"First_Name":          in.FirstName.Value,
		"Last_Name":           in.LastName.Value,
		"Phone":               in.Phone.Value,
		"Mobile":              in.Phone.Value,
		"Lead_Source":         in.ReferralSource.Or(defaultLeadSource),
		"ReferralURL":         in.ReferralURL.Value,
		"S1_Q1_Selfemployed":  in.S1Q1.Value,
		"S1_Q2_Filed1040_tax": in.S1Q2.Value,
		"S1_Q3_Affected":      in.S1Q3.Value,
		"Estimated_Value":     in.EstimatedValue.Value,
		"Pick_List_1":         defaultPickList,
		"Resume_URL":          in.ResumeURL.Or(defaultResumeURL),
	}
}

func MapInsertTaxIntake(in InsertTaxIntakeRequest) entity.DealFields {
	return entity.DealFields{
		"Deal_Name":         strings.TrimSpace(in.FirstName.Value + " " + in.LastName.Value),
		"Stage":             entity.StageIntake,
		"Tax_Type":          in.TaxType.Value,
		"Payment_Plan":      in.PaymentPlan.Value,
		"Issue_Reason":      in.IssueReason.Join(),
		"Zip_Code":          in.Zipcode.Value,
		"State":             in.State.Value,
		"County":            in.County.Value,
		"Unfiled_Return":    in.UnfiledReturn.Value,
		"IRS_Owe":           in.IrsOwe.Value,
		"Protect_Assets":    in.ProtectAssets.Value,
		"Contact_Reason":    in.ContactReason.Join(),
		"First_Name":        in.FirstName.Value,
		"Last_Name":         in.LastName.Value,
		"Email":             in.Email.Value,
		"Phone":             in.Phone.Value,
		"Mobile":            in.Phone.Value,
		"Lead_Source":       in.ReferralSource.Or(defaultIntakeSource),
		"Business_Name":     in.BusinessName.Value,
		"Best_Time_To_Call": in.BestTimeToCall.Value,
	}
}

func MapStage(in UpdateStageRequest) entity.DealFields {
	return entity.DealFields{"Stage": in.Stage.Value}
}

func MapAmount(in UpdateAmountRequest) entity.DealFields {
	fields := entity.DealFields{
		"Amount":         in.Amount.Value(),
		"IRS_Balance":    in.IRSBalance.Value(),
		"Calculated_PDF": in.CalculatedPDF.Value(),
	}
	if in.CalculationDate.Present() {
		fields["Calculation_Date"] = in.CalculationDate.Value
	}
	return fields
}

func MapSSN(in UpdateSSNRequest) entity.DealFields {
	return entity.DealFields{"SSN": in.SSN.Value}
}

func MapRecord(in UpdateRecordRequest) entity.DealFields {
	return entity.DealFields{
		"Stage":               in.Stage.Value,
		"Deal_Name":           in.ClientName.Value,
		"City":                in.City.Value,
		"Effective_Date":      in.EffectiveDate.Value,
		"Email":               in.Email.Value,
		"First_Name":          in.FirstName.Value,
		"Last_Name":           in.LastName.Value,
		"Phone":               in.Phone.Value,
		"Mobile":              in.Phone.Value,
		"State":               in.State.Value,
		"Street_Address":      in.StreetAddress.Value,
		"Zip_Code":            in.ZipCode.Value,
		"Claim_Dependent":     in.ClaimDependent.Value,
		"Lead_Source":         in.ReferralSource.Or(defaultLeadSource),
		"ReferralURL":         in.ReferralURL.Value,
		"S1_Q1_Selfemployed":  in.S1Q1.Value,
		"S1_Q2_Filed1040_tax": in.S1Q2.Value,
		"S1_Q3_Affected":      in.S1Q3.Value,
		"S3_Q1":               in.S3Q1.Value,
		"S3_Q2":               in.S3Q2.Value,
		"S4_Q1":               in.S4Q1.Value,
		"S4_Q2":               in.S4Q2.Value,
		"S4_Q3":               in.S4Q3.Value,
		"S5_Q1":               in.S5Q1.Value,
	}
}

func MapExisting(in UpdateExistingRequest) entity.DealFields {
	return entity.DealFields{
		"Deal_Name":           in.ClientName.Value,
		"Email":               in.Email.Value,
		"First_Name":          in.FirstName.Value,
		"Last_Name":           in.LastName.Value,
		"Phone":               in.Phone.Value,
		"Mobile":              in.Phone.Value,
		"Lead_Source":         in.ReferralSource.Or(defaultLeadSource),
		"ReferralURL":         in.ReferralURL.Value,
		"S1_Q1_Selfemployed":  in.S1Q1.Value,
		"S1_Q2_Filed1040_tax": in.S1Q2.Value,
		"S1_Q3_Affected":      in.S1Q3.Value,
	}
}
