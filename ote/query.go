package ote

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

const queryElectricity = `<?xml version="1.0" encoding="UTF-8" ?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:pub="http://www.ote-cr.cz/schema/service/public">
    <soapenv:Header/>
    <soapenv:Body>
        <pub:GetDamPriceE>
            <pub:StartDate>%s</pub:StartDate>
            <pub:EndDate>%s</pub:EndDate>
            <pub:InEur>%t</pub:InEur>
        </pub:GetDamPriceE>
    </soapenv:Body>
</soapenv:Envelope>
`

const queryGas = `<?xml version="1.0" encoding="UTF-8" ?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:pub="http://www.ote-cr.cz/schema/service/public">
    <soapenv:Header/>
    <soapenv:Body>
        <pub:GetImPriceG>
            <pub:StartDate>%s</pub:StartDate>
            <pub:EndDate>%s</pub:EndDate>
        </pub:GetImPriceG>
    </soapenv:Body>
</soapenv:Envelope>
`

// electricityQuery builds the GetDamPriceE request body. Both dates are
// inclusive bounds of the queried range.
func electricityQuery(start, end time.Time, inEur bool) string {
	return fmt.Sprintf(queryElectricity, start.Format(dateLayout), end.Format(dateLayout), inEur)
}

// gasQuery builds the GetImPriceG request body. Gas prices are always
// reported in EUR, conversion happens after extraction.
func gasQuery(start, end time.Time) string {
	return fmt.Sprintf(queryGas, start.Format(dateLayout), end.Format(dateLayout))
}
